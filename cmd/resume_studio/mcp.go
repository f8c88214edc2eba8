package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/orchestrate"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/toolcall"
)

var mcpBackendURL string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tool-call protocol on stdio",
	Long:  `Expose list_templates, extract_resume_data, generate_resume_html, and generate_resume as tool calls over the Model Context Protocol. Intended to be launched by a tool-invoking client.`,
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpBackendURL, "backend-url", "", "Rendering/extraction backend origin (overrides RESUME_BACKEND_URL)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	client := backend.New(mcpBackendURL)
	store := session.NewMemoryStore()

	adapter := toolcall.New(
		orchestrate.NewGenerator(client, store),
		orchestrate.NewUploader(client),
	)
	return adapter.ServeStdio(version)
}
