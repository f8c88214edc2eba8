package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestResolveBaseURL(t *testing.T) {
	t.Run("explicit override wins", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "http://env:9000")
		assert.Equal(t, "http://override:7000", ResolveBaseURL("http://override:7000/"))
	})

	t.Run("environment beats fallback", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "http://env:9000")
		assert.Equal(t, "http://env:9000", ResolveBaseURL(""))
	})

	t.Run("hard-coded fallback", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "")
		assert.Equal(t, FallbackBaseURL, ResolveBaseURL(""))
	})
}

func TestClient_Templates(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/templates", r.URL.Path)
		_ = json.NewEncoder(w).Encode(types.TemplateCatalog{
			Templates: []string{"modern.tex", "classic.tex"},
		})
	}))
	defer stub.Close()

	client := New(stub.URL)
	templates, err := client.Templates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"modern.tex", "classic.tex"}, templates)
}

func TestClient_Generate_HTML(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate_resume", r.URL.Path)

		var req types.GenerationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "modern.tex", req.Template)
		assert.Equal(t, types.FormatHTML, req.Format)

		_, _ = w.Write([]byte("<div>OK</div>"))
	}))
	defer stub.Close()

	client := New(stub.URL)
	body, err := client.Generate(context.Background(), types.GenerationRequest{
		Template: "modern.tex",
		Data:     types.ResumeData{Summary: "hi"},
		Format:   types.FormatHTML,
	})
	require.NoError(t, err)
	assert.Equal(t, "<div>OK</div>", string(body))
}

func TestClient_Generate_StatusError(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("latex compile failed"))
	}))
	defer stub.Close()

	client := New(stub.URL)
	_, err := client.Generate(context.Background(), types.GenerationRequest{Format: types.FormatHTML})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "latex compile failed", statusErr.Body)
}

func TestClient_Generate_TransportErrorNamesURL(t *testing.T) {
	// A closed server yields a connection error.
	stub := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := stub.URL
	stub.Close()

	client := New(url)
	_, err := client.Generate(context.Background(), types.GenerationRequest{Format: types.FormatHTML})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, err.Error(), url, "transport errors must name the attempted URL")
}

func TestClient_UploadResume(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload_resume", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "resume.pdf", header.Filename)
		assert.Equal(t, "%PDF fake", string(content))

		_ = json.NewEncoder(w).Encode(types.ParsedResumeData{
			Parsed:     &types.ResumeData{Summary: "extracted"},
			RawText:    "raw",
			Confidence: 0.7,
		})
	}))
	defer stub.Close()

	client := New(stub.URL)
	parsed, err := client.UploadResume(context.Background(), "resume.pdf", strings.NewReader("%PDF fake"))
	require.NoError(t, err)
	require.NotNil(t, parsed.Parsed)
	assert.Equal(t, "extracted", parsed.Parsed.Summary)
}

func TestClient_UploadResumePath(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload_resume_path", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "/tmp/resume.pdf", body["file_path"])

		_ = json.NewEncoder(w).Encode(types.ParsedResumeData{Error: "unsupported file type"})
	}))
	defer stub.Close()

	client := New(stub.URL)
	parsed, err := client.UploadResumePath(context.Background(), "/tmp/resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "unsupported file type", parsed.Error)
}
