// Package main provides the entry point for the Resume Studio server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version identifies this build to tool-protocol clients.
const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "resume_studio",
	Short: "Resume Studio generation service",
	Long:  "Resume Studio assembles structured resume data, applies a deterministic normalization pass, and renders HTML previews or PDFs through a rendering backend. Operations are exposed over REST and a tool-call protocol.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
