package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	j "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	avroschema "github.com/skemaro/avroschema"
)

var ignoreUnknown bool

var assembleCmd = &cobra.Command{
	Use:   "assemble <decomposition-file>",
	Short: "resolve a decomposition back into a nested schema",
	Long:  "Reads the JSON produced by `avroschema decompose` and inlines every reference: synthesized names always, named types on first use.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(filepath.Clean(args[0]))
		if err != nil {
			return err
		}
		var in decomposition
		if err := j.Unmarshal(data, &in); err != nil {
			return err
		}
		root, err := avroschema.FromJSON(in.Schema)
		if err != nil {
			return err
		}
		schemas := make(map[string]avroschema.Schema, len(in.Schemas))
		for name, raw := range in.Schemas {
			if schemas[name], err = avroschema.FromJSON(raw); err != nil {
				return err
			}
		}

		out, asm, err := avroschema.Assemble(root, schemas, avroschema.AssembleOptions{
			IgnoreUnknown: ignoreUnknown,
			Lenient:       lenientMode,
			MaxDepth:      maxDepth,
		})
		if err != nil {
			return err
		}
		logrus.Debugf("assembled schema, %d named types inlined, %d references unresolved",
			len(asm.ResolvedNamedSchemas), len(asm.MissingSchemaNames))
		for name := range asm.MissingSchemaNames {
			logrus.Warnf("unresolved reference %q", name)
		}

		text, err := avroschema.ToJSON(out)
		if err != nil {
			return err
		}
		fmt.Println(string(text))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().BoolVar(&ignoreUnknown, "ignore-unknown", false, "leave unknown references unresolved instead of failing")
	assembleCmd.Flags().BoolVar(&lenientMode, "lenient", false, "allow non-standard type declarations")
	assembleCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum schema nesting depth (0 = unlimited)")
}
