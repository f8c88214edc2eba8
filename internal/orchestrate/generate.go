// Package orchestrate turns a resume draft plus a template selection into a
// generation request against the rendering backend, and wraps extraction
// calls for uploaded documents. It is protocol-agnostic: the HTTP surface and
// the tool-call adapter are thin translators over this package.
package orchestrate

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/enhance"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/types"
)

// DefaultTemplate is the hard-coded fallback when every other resolution
// level comes up empty.
const DefaultTemplate = "modern.tex"

// ErrEmptyResume indicates a generation request with no usable resume data.
// It is rejected before any network call.
type ErrEmptyResume struct{}

func (e *ErrEmptyResume) Error() string {
	return "resume data is empty"
}

// ErrUnsupportedFormat indicates a format outside html/pdf.
type ErrUnsupportedFormat struct {
	Format string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported output format: %q", e.Format)
}

// Result is the outcome of a generation call: HTML text for previews or PDF
// bytes for downloads, never both.
type Result struct {
	Kind string // types.FormatHTML or types.FormatPDF
	HTML string
	PDF  []byte
}

// GenerateOptions configures a single generation call.
type GenerateOptions struct {
	// Template is the caller's explicit selection; it takes precedence over
	// the draft's own template field.
	Template string
	// Format is html or pdf; empty defaults to html, case-insensitive.
	Format string
	// UseEnhancement runs the normalization pass over a copy of the draft
	// before sending it to the renderer.
	UseEnhancement bool
	// SessionID selects the session whose last-used template participates in
	// resolution. Empty means no session context.
	SessionID string
}

// Generator builds generation requests and dispatches them to the backend.
type Generator struct {
	backend *backend.Client
	store   session.Store

	mu      sync.Mutex
	preview map[string]string // session ID -> last HTML preview
}

// NewGenerator creates a Generator. The store may be nil for one-shot CLI
// use; template resolution then skips the last-used level.
func NewGenerator(client *backend.Client, store session.Store) *Generator {
	return &Generator{
		backend: client,
		store:   store,
		preview: make(map[string]string),
	}
}

// NormalizeFormat lower-cases the requested format and applies the html
// default. The returned error is a validation failure, raised before any
// network call.
func NormalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "":
		return types.FormatHTML, nil
	case types.FormatHTML, types.FormatPDF:
		return f, nil
	default:
		return "", &ErrUnsupportedFormat{Format: format}
	}
}

// ResolveTemplate picks the template for a generation call. Precedence:
// explicit selection, draft template, the session's last-used template, the
// first catalog entry, then the hard-coded fallback. Catalog errors fall
// through to the fallback rather than failing the generation.
func (g *Generator) ResolveTemplate(ctx context.Context, draft types.ResumeData, selected, sessionID string) string {
	if selected != "" {
		return selected
	}
	if draft.Template != "" {
		return draft.Template
	}
	if g.store != nil && sessionID != "" {
		last, err := g.store.LastTemplate(ctx, sessionID)
		if err == nil && last != "" {
			return last
		}
	}
	if templates, err := g.backend.Templates(ctx); err == nil && len(templates) > 0 {
		return templates[0]
	} else if err != nil {
		log.Printf("[generate] template catalog unavailable, using fallback: %v", err)
	}
	return DefaultTemplate
}

// Generate builds and dispatches a generation request. Collaborator failures
// propagate unchanged with context added; nothing is retried.
func (g *Generator) Generate(ctx context.Context, draft types.ResumeData, opts GenerateOptions) (*Result, error) {
	if draft.IsEmpty() {
		return nil, &ErrEmptyResume{}
	}

	format, err := NormalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	template := g.ResolveTemplate(ctx, draft, opts.Template, opts.SessionID)

	data := draft
	if opts.UseEnhancement {
		data = enhance.Enhance(draft)
	}

	body, err := g.backend.Generate(ctx, types.GenerationRequest{
		Template: template,
		Data:     data,
		Format:   format,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	g.rememberTemplate(ctx, opts.SessionID, template)

	if format == types.FormatPDF {
		log.Printf("[generate] rendered %d-byte PDF with template %s", len(body), template)
		return &Result{Kind: types.FormatPDF, PDF: body}, nil
	}

	html := string(body)
	g.cachePreview(opts.SessionID, html)
	log.Printf("[generate] rendered %d-char HTML preview with template %s", len(html), template)
	return &Result{Kind: types.FormatHTML, HTML: html}, nil
}

// Templates returns the backend's template catalog verbatim.
func (g *Generator) Templates(ctx context.Context) ([]string, error) {
	templates, err := g.backend.Templates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// rememberTemplate records the template as last-used for the session.
func (g *Generator) rememberTemplate(ctx context.Context, sessionID, template string) {
	if g.store == nil || sessionID == "" {
		return
	}
	if err := g.store.SetLastTemplate(ctx, sessionID, template); err != nil {
		log.Printf("[generate] failed to record last-used template: %v", err)
	}
}

// cachePreview keeps the latest HTML preview per session so the print flow
// can reuse it without a second render.
func (g *Generator) cachePreview(sessionID, html string) {
	if sessionID == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.preview[sessionID] = html
}

// cachedPreview returns the latest HTML preview for the session, if any.
func (g *Generator) cachedPreview(sessionID string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	html, ok := g.preview[sessionID]
	return html, ok && html != ""
}
