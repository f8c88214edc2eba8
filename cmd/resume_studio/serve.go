package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/server"
	"github.com/jonathan/resume-studio/internal/toolcall"
)

var (
	servePort       int
	serveBackendURL string
	serveConfigPath string
	serveWithMCP    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume generation, extraction, and session draft endpoints. With --with-mcp the tool-call protocol server runs on stdio in the same process, sharing the session store.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveBackendURL, "backend-url", "", "Rendering/extraction backend origin (overrides RESUME_BACKEND_URL)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveWithMCP, "with-mcp", false, "Also serve the tool-call protocol on stdio")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Port:        servePort,
		BackendURL:  serveBackendURL,
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		if err := fileCfg.Validate(); err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		BackendURL:  cfg.BackendURL,
		DatabaseURL: cfg.DatabaseURL,
		Timeout:     cfg.Timeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if !serveWithMCP {
		return srv.Start()
	}

	adapter := toolcall.New(srv.Generator(), srv.Uploader())

	var g errgroup.Group
	g.Go(srv.Start)
	g.Go(func() error { return adapter.ServeStdio(version) })
	return g.Wait()
}
