package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/eracun/internal/model"
	"github.com/rezonia/eracun/pkg/eracun"
)

var validateCmd = &cobra.Command{
	Use:   "validate <params.json>",
	Short: "Validate invoice parameters without generating a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	params, err := readParams(args[0])
	if err != nil {
		return err
	}

	codec := eracun.NewCodec()
	result := codec.Validate(params)

	printWarnings(result.Warnings)

	if !result.Valid() {
		printErrorTree(result.Errors)
		return fmt.Errorf("validation failed")
	}

	fmt.Println("parameters are valid")
	return nil
}

func printErrorTree(errs *model.Errors) {
	for _, line := range errs.Flatten() {
		fmt.Fprintf(os.Stderr, "error: %s\n", line)
	}
}
