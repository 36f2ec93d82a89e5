package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/eracun/pkg/eracun"
)

var parseCmd = &cobra.Command{
	Use:   "parse <invoice.xml>",
	Short: "Parse a UBL invoice document into the parameter model",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	codec := eracun.NewCodec()
	inv, err := codec.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(inv)
}
