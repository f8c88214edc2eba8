package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/orchestrate"
	"github.com/jonathan/resume-studio/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	generator  *orchestrate.Generator
	uploader   *orchestrate.Uploader
	store      session.Store
	validate   *validator.Validate
	closeStore func()
}

// Config holds server configuration
type Config struct {
	Port        int
	BackendURL  string
	DatabaseURL string
	Timeout     time.Duration
}

// New creates a new server instance. When DatabaseURL is set the session
// draft store is PostgreSQL-backed; otherwise drafts live in memory.
func New(cfg Config) (*Server, error) {
	var clientOpts []backend.Option
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, backend.WithTimeout(cfg.Timeout))
	}
	client := backend.New(cfg.BackendURL, clientOpts...)

	var store session.Store
	closeStore := func() {}
	if cfg.DatabaseURL != "" {
		pgStore, err := session.ConnectPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect session store: %w", err)
		}
		store = pgStore
		closeStore = pgStore.Close
	} else {
		store = session.NewMemoryStore()
	}

	s := &Server{
		generator:  orchestrate.NewGenerator(client, store),
		uploader:   orchestrate.NewUploader(client),
		store:      store,
		validate:   validator.New(),
		closeStore: closeStore,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("POST /upload_resume", s.handleUploadResume)
	mux.HandleFunc("POST /upload_resume_path", s.handleUploadResumePath)
	mux.HandleFunc("POST /generate_resume", s.handleGenerateResume)
	mux.HandleFunc("POST /generate_resume/print", s.handlePrintResume)
	mux.HandleFunc("POST /generate_resume/text", s.handleTextResume)

	// Session draft endpoints
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}/draft", s.handleGetDraft)
	mux.HandleFunc("PUT /sessions/{id}/draft", s.handleSaveDraft)
	mux.HandleFunc("DELETE /sessions/{id}/draft", s.handleClearDraft)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF renders can be slow
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("[server] using rendering backend at %s", client.BaseURL())
	return s, nil
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Generator exposes the generation orchestrator so a tool-call adapter can
// share the server's session store and preview cache.
func (s *Server) Generator() *orchestrate.Generator {
	return s.generator
}

// Uploader exposes the upload orchestrator.
func (s *Server) Uploader() *orchestrate.Uploader {
	return s.uploader
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.closeStore()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failWith maps an error to a status code and writes the error envelope.
func (s *Server) failWith(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
