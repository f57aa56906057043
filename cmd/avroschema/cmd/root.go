package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	avroschema "github.com/skemaro/avroschema"
)

var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "avroschema",
	Short: "transform Avro schemas: canonical form, decomposition, reassembly",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
}

// loadSchema reads a schema document, choosing the decoder by extension.
func loadSchema(path string) (avroschema.Schema, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return avroschema.FromYAML(data)
	default:
		return avroschema.FromJSON(data)
	}
}
