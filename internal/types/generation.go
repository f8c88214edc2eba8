package types

// Output formats accepted by the rendering backend.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// GenerationRequest is the request body for POST /generate_resume. It is
// constructed per call and never persisted.
type GenerationRequest struct {
	Template string     `json:"template"`
	Data     ResumeData `json:"data"`
	Format   string     `json:"format"`
}

// ParsedResumeData is the transient result of extraction. Parsed carries only
// the fields the extractor recovered; the caller merges it into the draft.
type ParsedResumeData struct {
	Parsed     *ResumeData `json:"parsed,omitempty"`
	RawText    string      `json:"rawText"`
	Confidence float64     `json:"confidence"`
	Error      string      `json:"error,omitempty"`
}

// TemplateCatalog is the response body for GET /templates.
type TemplateCatalog struct {
	Templates []string `json:"templates"`
}
