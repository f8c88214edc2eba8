package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/orchestrate"
	"github.com/jonathan/resume-studio/internal/printpdf"
	"github.com/jonathan/resume-studio/internal/types"
)

var (
	genTemplate   string
	genFormat     string
	genEnhance    bool
	genOut        string
	genLocalPrint bool
	genBackendURL string
)

var generateCmd = &cobra.Command{
	Use:   "generate <resume.json>",
	Short: "Render a resume file to HTML or PDF",
	Long:  `Read structured resume data from a JSON file and render it through the backend. With --local-print the HTML preview is wrapped in a print shell and rendered to PDF with a headless browser instead of asking the backend for a PDF.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genTemplate, "template", "", "Template identifier")
	generateCmd.Flags().StringVar(&genFormat, "format", "html", "Output format: html or pdf")
	generateCmd.Flags().BoolVar(&genEnhance, "enhance", false, "Run the normalization pass before rendering")
	generateCmd.Flags().StringVar(&genOut, "out", "", "Output file (defaults to stdout for html, resume.pdf for pdf)")
	generateCmd.Flags().BoolVar(&genLocalPrint, "local-print", false, "Render the PDF locally with a headless browser")
	generateCmd.Flags().StringVar(&genBackendURL, "backend-url", "", "Rendering/extraction backend origin (overrides RESUME_BACKEND_URL)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	var draft types.ResumeData
	if err := json.Unmarshal(raw, &draft); err != nil {
		return fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	generator := orchestrate.NewGenerator(backend.New(genBackendURL), nil)
	ctx := cmd.Context()

	if genLocalPrint {
		return generateLocalPrint(ctx, generator, draft)
	}

	result, err := generator.Generate(ctx, draft, orchestrate.GenerateOptions{
		Template:       genTemplate,
		Format:         genFormat,
		UseEnhancement: genEnhance,
	})
	if err != nil {
		return err
	}

	if result.Kind == types.FormatPDF {
		out := genOut
		if out == "" {
			out = "resume.pdf"
		}
		if err := os.WriteFile(out, result.PDF, 0o644); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(result.PDF), out)
		return nil
	}

	if genOut != "" {
		if err := os.WriteFile(genOut, []byte(result.HTML), 0o644); err != nil {
			return fmt.Errorf("failed to write HTML: %w", err)
		}
		fmt.Printf("Wrote HTML preview to %s\n", genOut)
		return nil
	}
	fmt.Println(result.HTML)
	return nil
}

// generateLocalPrint renders an HTML preview, wraps it in the print shell,
// and prints it to PDF with a headless browser.
func generateLocalPrint(ctx context.Context, generator *orchestrate.Generator, draft types.ResumeData) error {
	doc, err := generator.PrintView(ctx, draft, orchestrate.GenerateOptions{
		Template:       genTemplate,
		UseEnhancement: genEnhance,
	})
	if err != nil {
		return err
	}

	pdf, err := printpdf.Render(ctx, doc)
	if err != nil {
		return err
	}

	out := genOut
	if out == "" {
		out = "resume.pdf"
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(pdf), out)
	return nil
}
