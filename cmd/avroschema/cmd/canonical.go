package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	avroschema "github.com/skemaro/avroschema"
)

var (
	keepLogicalTypes bool
	keepAttributes   bool
	lenientMode      bool
	maxDepth         int
)

var canonicalCmd = &cobra.Command{
	Use:   "canonical <schema-file>",
	Short: "print the parsing canonical form of a schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema(args[0])
		if err != nil {
			return err
		}
		canon, err := avroschema.Canonicalize(s, avroschema.CanonicalizeOptions{
			KeepLogicalTypes: keepLogicalTypes,
			KeepAttributes:   keepAttributes,
			Lenient:          lenientMode,
			MaxDepth:         maxDepth,
		})
		if err != nil {
			return err
		}
		data, err := avroschema.ToJSON(canon)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <schema-file>",
	Short: "print the hash of a schema's canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema(args[0])
		if err != nil {
			return err
		}
		canon, err := avroschema.Canonicalize(s, avroschema.CanonicalizeOptions{
			KeepLogicalTypes: keepLogicalTypes,
			Lenient:          lenientMode,
			MaxDepth:         maxDepth,
		})
		if err != nil {
			return err
		}
		fp, err := avroschema.Hash(canon)
		if err != nil {
			return err
		}
		fmt.Println(fp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(canonicalCmd)
	rootCmd.AddCommand(fingerprintCmd)
	for _, c := range []*cobra.Command{canonicalCmd, fingerprintCmd} {
		c.Flags().BoolVar(&keepLogicalTypes, "keep-logical-types", false, "retain logicalType wrappers")
		c.Flags().BoolVar(&lenientMode, "lenient", false, "allow non-standard type declarations")
		c.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum schema nesting depth (0 = unlimited)")
	}
	canonicalCmd.Flags().BoolVar(&keepAttributes, "keep-attributes", false, "only resolve names, keep all attributes")
}
