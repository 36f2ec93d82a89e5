package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/eracun/internal/attachment"
	"github.com/rezonia/eracun/internal/signature"
)

var inspectExtractDir string

var inspectCmd = &cobra.Command{
	Use:   "inspect <invoice.xml>",
	Short: "Report signature presence and embedded attachments",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectExtractDir, "extract", "", "Extract embedded attachments into a directory")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	detector := signature.NewDetector()
	info, err := detector.Detect(data)
	if err != nil {
		return fmt.Errorf("failed to inspect document: %w", err)
	}

	if info.Present {
		fmt.Printf("signature: present at %s (certificate: %v)\n", info.Path, info.HasCertificate)
	} else {
		fmt.Println("signature: not present")
	}

	files, err := attachment.Extract(data)
	if err != nil {
		return fmt.Errorf("failed to extract attachments: %w", err)
	}

	if len(files) == 0 {
		fmt.Println("attachments: none")
		return nil
	}

	fmt.Printf("attachments: %d\n", len(files))
	for _, f := range files {
		fmt.Printf("  %s  %s  %s  %d bytes\n", f.ID, f.Filename, f.MimeType, len(f.Data))
	}

	if inspectExtractDir == "" {
		return nil
	}

	if err := os.MkdirAll(inspectExtractDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", inspectExtractDir, err)
	}
	for _, f := range files {
		name := f.Filename
		if name == "" {
			name = f.ID
		}
		path := inspectExtractDir + string(os.PathSeparator) + name
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("extracted %s\n", path)
	}
	return nil
}
