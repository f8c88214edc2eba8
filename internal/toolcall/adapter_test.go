package toolcall

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/orchestrate"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/types"
)

var pdfBytes = []byte{0x25, 0x50, 0x44, 0x46} // %PDF

// newTestAdapter stubs the rendering/extraction backend and wires an Adapter
// against it.
func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/templates":
			_ = json.NewEncoder(w).Encode(types.TemplateCatalog{Templates: []string{"modern.tex", "classic.tex"}})
		case "/generate_resume":
			var req types.GenerationRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Format == types.FormatPDF {
				_, _ = w.Write(pdfBytes)
				return
			}
			_, _ = w.Write([]byte("<div>" + req.Template + "</div>"))
		case "/upload_resume_path":
			_ = json.NewEncoder(w).Encode(types.ParsedResumeData{
				Parsed:     &types.ResumeData{Summary: "extracted"},
				RawText:    "raw text",
				Confidence: 0.7,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(stub.Close)

	client := backend.New(stub.URL)
	generator := orchestrate.NewGenerator(client, session.NewMemoryStore())
	return New(generator, orchestrate.NewUploader(client))
}

func callTool(t *testing.T, a *Adapter, h toolHandler, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := a.guard(h)(context.Background(), req)
	require.NoError(t, err, "guard never propagates errors")
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestServer_RegistersToolCatalog(t *testing.T) {
	a := newTestAdapter(t)

	srv := a.Server("test")
	require.NotNil(t, srv)
}

func TestListTemplates(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.listTemplates, "list_templates", nil)
	require.False(t, result.IsError)

	var catalog types.TemplateCatalog
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &catalog))
	assert.Equal(t, []string{"modern.tex", "classic.tex"}, catalog.Templates)
}

func TestGenerateResume_PDFRoundTrip(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.generateResume, "generate_resume", map[string]any{
		"resume_data": map[string]any{"summary": "hi"},
		"format":      "pdf",
	})
	require.False(t, result.IsError)

	text := resultText(t, result)
	require.True(t, strings.HasPrefix(text, PDFMarker), "pdf payload must carry the marker, got %q", text)

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(text, PDFMarker))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, decoded)
}

func TestGenerateResume_HTMLHasNoMarker(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.generateResume, "generate_resume", map[string]any{
		"resume_data": map[string]any{"summary": "hi"},
		"template":    "classic.tex",
	})
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Equal(t, "<div>classic.tex</div>", text)
	assert.False(t, strings.HasPrefix(text, PDFMarker))
}

func TestGenerateResume_UnknownFormatFallsBackToHTML(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.generateResume, "generate_resume", map[string]any{
		"resume_data": map[string]any{"summary": "hi"},
		"format":      "docx",
	})
	require.False(t, result.IsError)
	assert.Equal(t, "<div>modern.tex</div>", resultText(t, result))
}

func TestGenerateResume_FormatCaseInsensitive(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.generateResume, "generate_resume", map[string]any{
		"resume_data": map[string]any{"summary": "hi"},
		"format":      "PDF",
	})
	require.False(t, result.IsError)
	assert.True(t, strings.HasPrefix(resultText(t, result), PDFMarker))
}

func TestGenerateResumeHTML(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.generateResumeHTML, "generate_resume_html", map[string]any{
		"resume_data": map[string]any{"summary": "hi"},
		"template":    "modern.tex",
	})
	require.False(t, result.IsError)
	assert.Equal(t, "<div>modern.tex</div>", resultText(t, result))
}

func TestGenerateResume_MissingData(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.generateResume, "generate_resume", map[string]any{
		"format": "html",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "resume_data is required")
}

func TestGenerateResume_SchemaViolation(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.generateResume, "generate_resume", map[string]any{
		"resume_data": map[string]any{
			"skills": []any{map[string]any{"name": "Go", "category": "bogus"}},
		},
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid resume_data")
}

func TestExtractResumeData(t *testing.T) {
	a := newTestAdapter(t)

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	result := callTool(t, a, a.extractResumeData, "extract_resume_data", map[string]any{
		"file_path": path,
	})
	require.False(t, result.IsError)

	var parsed types.ParsedResumeData
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &parsed))
	require.NotNil(t, parsed.Parsed)
	assert.Equal(t, "extracted", parsed.Parsed.Summary)
	assert.InDelta(t, 0.7, parsed.Confidence, 0.0001)
}

func TestExtractResumeData_NonexistentPath(t *testing.T) {
	a := newTestAdapter(t)

	result := callTool(t, a, a.extractResumeData, "extract_resume_data", map[string]any{
		"file_path": "/does/not/exist.pdf",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "file does not exist")
}

func TestGuard_RecoversPanic(t *testing.T) {
	a := newTestAdapter(t)

	boom := func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("kaboom")
	}
	result := callTool(t, a, boom, "boom", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "internal error")
}

func TestGuard_WrapsErrors(t *testing.T) {
	a := newTestAdapter(t)

	failing := func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, fmt.Errorf("backend unreachable")
	}
	result := callTool(t, a, failing, "failing", nil)
	assert.True(t, result.IsError)
	assert.Equal(t, "backend unreachable", resultText(t, result))
}
