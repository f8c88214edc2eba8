package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/orchestrate"
	"github.com/jonathan/resume-studio/internal/types"
)

// GenerateRequest represents the request body for /generate_resume and its
// print/text variants.
type GenerateRequest struct {
	Template       string           `json:"template,omitempty"`
	Data           types.ResumeData `json:"data"`
	Format         string           `json:"format,omitempty"`
	UseEnhancement bool             `json:"use_enhancement,omitempty"`
	SessionID      string           `json:"session_id,omitempty" validate:"omitempty,uuid4"`
}

// SessionResponse represents the response for POST /sessions.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// handleListTemplates proxies the backend template catalog.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.generator.Templates(r.Context())
	if err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.TemplateCatalog{Templates: templates})
}

// decodeGenerateRequest decodes and validates a generation request body.
func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*GenerateRequest, bool) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if err := s.validate.Struct(&req); err != nil {
		s.failWith(w, err)
		return nil, false
	}
	return &req, true
}

// handleGenerateResume renders the resume. html responses carry the preview
// text; pdf responses stream the binary with an attachment disposition.
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	result, err := s.generator.Generate(r.Context(), req.Data, orchestrate.GenerateOptions{
		Template:       req.Template,
		Format:         req.Format,
		UseEnhancement: req.UseEnhancement,
		SessionID:      req.SessionID,
	})
	if err != nil {
		s.failWith(w, err)
		return
	}

	if result.Kind == types.FormatPDF {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.PDF)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.HTML))
}

// handlePrintResume returns a standalone print-ready document, reusing a
// cached preview for the session when one exists.
func (s *Server) handlePrintResume(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	doc, err := s.generator.PrintView(r.Context(), req.Data, orchestrate.GenerateOptions{
		Template:       req.Template,
		UseEnhancement: req.UseEnhancement,
		SessionID:      req.SessionID,
	})
	if err != nil {
		s.failWith(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// handleTextResume renders the resume to HTML and flattens it to plain text.
func (s *Server) handleTextResume(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	result, err := s.generator.Generate(r.Context(), req.Data, orchestrate.GenerateOptions{
		Template:       req.Template,
		Format:         types.FormatHTML,
		UseEnhancement: req.UseEnhancement,
		SessionID:      req.SessionID,
	})
	if err != nil {
		s.failWith(w, err)
		return
	}

	text, err := export.HTMLToText(result.HTML)
	if err != nil {
		s.failWith(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// handleUploadResume accepts a multipart resume document, extracts it, and
// merges the result into the session draft when a session_id is supplied.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	parsed, err := s.uploader.UploadFile(r.Context(), header.Filename, file)
	if err != nil {
		s.respondUpload(w, r, err, nil)
		return
	}
	s.respondUpload(w, r, nil, parsed)
}

// UploadPathRequest represents the request body for /upload_resume_path.
type UploadPathRequest struct {
	FilePath  string `json:"file_path" validate:"required"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid4"`
}

// handleUploadResumePath extracts a resume from a path local to the backend.
func (s *Server) handleUploadResumePath(w http.ResponseWriter, r *http.Request) {
	var req UploadPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.failWith(w, err)
		return
	}

	parsed, err := s.uploader.UploadByPath(r.Context(), req.FilePath)
	if err != nil {
		s.respondUpload(w, r, err, nil)
		return
	}
	if req.SessionID != "" {
		if err := s.mergeIntoSession(r, req.SessionID, parsed.Parsed); err != nil {
			s.failWith(w, err)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}

// respondUpload writes the extraction outcome. A no-usable-data outcome is a
// 200 with an error field (the UI prompts for manual entry), not a transport
// failure.
func (s *Server) respondUpload(w http.ResponseWriter, r *http.Request, err error, parsed *types.ParsedResumeData) {
	if err != nil {
		if errors.Is(err, orchestrate.ErrNoUsableData) {
			s.jsonResponse(w, http.StatusOK, types.ParsedResumeData{Error: err.Error()})
			return
		}
		s.failWith(w, err)
		return
	}

	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		if err := s.mergeIntoSession(r, sessionID, parsed.Parsed); err != nil {
			s.failWith(w, err)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}

// mergeIntoSession applies the shallow merge policy to the session draft.
func (s *Server) mergeIntoSession(r *http.Request, sessionID string, parsed *types.ResumeData) error {
	draft, err := s.store.LoadDraft(r.Context(), sessionID)
	if err != nil {
		return err
	}
	return s.store.SaveDraft(r.Context(), sessionID, orchestrate.MergeDraft(draft, parsed))
}

// handleCreateSession starts a new editing session with an empty draft.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.store.Create(r.Context())
	if err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, SessionResponse{SessionID: id})
}

// handleGetDraft returns the session's current draft.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := s.store.LoadDraft(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, draft)
}

// handleSaveDraft replaces the session's draft.
func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	var draft types.ResumeData
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.store.SaveDraft(r.Context(), r.PathValue("id"), draft); err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleClearDraft resets the session to an empty draft.
func (s *Server) handleClearDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context(), r.PathValue("id")); err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}
