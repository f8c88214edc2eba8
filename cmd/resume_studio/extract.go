package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/orchestrate"
)

var extractBackendURL string

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract structured resume data from a document",
	Long:  `Upload a resume document (PDF or DOCX) to the extraction service and print the parsed fields as JSON. When extraction finds nothing usable the command reports it and exits cleanly so callers can fall back to manual entry.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractBackendURL, "backend-url", "", "Rendering/extraction backend origin (overrides RESUME_BACKEND_URL)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	uploader := orchestrate.NewUploader(backend.New(extractBackendURL))

	parsed, err := uploader.UploadFile(cmd.Context(), file.Name(), file)
	if errors.Is(err, orchestrate.ErrNoUsableData) {
		fmt.Println("No usable data could be extracted; enter the resume manually.")
		return nil
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
