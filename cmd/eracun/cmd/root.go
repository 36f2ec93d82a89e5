package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/eracun/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "eracun",
	Short: "Generate and parse Croatian UBL 2.1 e-invoices",
	Long: `eracun converts invoice parameters to fiscalization-profile UBL 2.1
documents and back.

Examples:
  # Generate an invoice document from JSON parameters
  eracun generate params.json -o invoice.xml

  # Parse a document back into the parameter model
  eracun parse invoice.xml

  # Validate parameters without generating
  eracun validate params.json

  # Report signature presence and embedded attachments
  eracun inspect invoice.xml

  # Run the HTTP API
  eracun serve --address :8080`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Setup(logger.Config{Level: logLevel, Format: logFormat})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
}
