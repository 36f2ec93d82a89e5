package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/eracun/pkg/eracun"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate <params.json>",
	Short: "Generate a UBL invoice document from JSON parameters",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the document to a file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params, err := readParams(args[0])
	if err != nil {
		return err
	}

	codec := eracun.NewCodec()
	result, err := codec.Generate(params)
	if err != nil {
		return fmt.Errorf("failed to generate document: %w", err)
	}

	printWarnings(result.Warnings)

	if !result.Valid() {
		printErrorTree(result.Errors)
		return fmt.Errorf("validation failed")
	}

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, result.XML, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", generateOutput)
		return nil
	}

	_, err = os.Stdout.Write(result.XML)
	return err
}

func readParams(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var params map[string]interface{}
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("%s is not a JSON object: %w", path, err)
	}
	return params, nil
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}
