package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/orchestrate"
)

var templatesBackendURL string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates known to the rendering service",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().StringVar(&templatesBackendURL, "backend-url", "", "Rendering/extraction backend origin (overrides RESUME_BACKEND_URL)")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	generator := orchestrate.NewGenerator(backend.New(templatesBackendURL), nil)

	templates, err := generator.Templates(cmd.Context())
	if err != nil {
		return err
	}
	for _, t := range templates {
		fmt.Println(t)
	}
	return nil
}
