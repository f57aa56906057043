package cmd

import (
	"fmt"
	"sort"

	j "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	avroschema "github.com/skemaro/avroschema"
)

// decomposition is the on-disk shape shared by decompose and assemble.
type decomposition struct {
	Schema  j.RawMessage            `json:"schema"`
	Schemas map[string]j.RawMessage `json:"schemas"`
	Missing []string                `json:"missing,omitempty"`
}

var decomposeCanonical bool

var decomposeCmd = &cobra.Command{
	Use:   "decompose <schema-file>",
	Short: "flatten a schema into a table of named sub-schemas plus a reference root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema(args[0])
		if err != nil {
			return err
		}
		if decomposeCanonical {
			if s, err = avroschema.Canonicalize(s, avroschema.CanonicalizeOptions{
				Lenient:  lenientMode,
				MaxDepth: maxDepth,
			}); err != nil {
				return err
			}
		}
		root, dec, err := avroschema.Decompose(s, avroschema.DecomposeOptions{
			Lenient:  lenientMode,
			MaxDepth: maxDepth,
		})
		if err != nil {
			return err
		}
		logrus.Debugf("decomposed into %d schemas (%d named, %d synthesized, %d missing)",
			len(dec.Schemas), len(dec.NamedSchemas), len(dec.HashedSchemaNames), len(dec.MissingSchemaNames))

		out := decomposition{Schemas: make(map[string]j.RawMessage, len(dec.Schemas))}
		if out.Schema, err = avroschema.ToJSON(root); err != nil {
			return err
		}
		for name, def := range dec.Schemas {
			if out.Schemas[name], err = avroschema.ToJSON(def); err != nil {
				return err
			}
		}
		for name := range dec.MissingSchemaNames {
			out.Missing = append(out.Missing, name)
		}
		sort.Strings(out.Missing)

		data, err := j.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decomposeCmd)
	decomposeCmd.Flags().BoolVar(&decomposeCanonical, "canonical", true, "canonicalize before decomposing")
	decomposeCmd.Flags().BoolVar(&lenientMode, "lenient", false, "allow non-standard type declarations")
	decomposeCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum schema nesting depth (0 = unlimited)")
}
