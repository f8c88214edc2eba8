// Package backend provides the typed HTTP client for the rendering and
// extraction services. The template catalog, typesetting, and parsing
// techniques behind these endpoints are opaque to this module.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jonathan/resume-studio/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 60 * time.Second

// FallbackBaseURL is the hard-coded fallback origin used when no override or
// environment value is configured.
const FallbackBaseURL = "http://localhost:8000"

// EnvBaseURL is the environment variable carrying the backend origin.
const EnvBaseURL = "RESUME_BACKEND_URL"

// ResolveBaseURL picks the backend origin: explicit override, then the
// environment, then the hard-coded fallback.
func ResolveBaseURL(override string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	if env := os.Getenv(EnvBaseURL); env != "" {
		return strings.TrimRight(env, "/")
	}
	return FallbackBaseURL
}

// Client talks to the rendering/extraction backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout overrides the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a backend client for the given origin. An empty baseURL is
// resolved through ResolveBaseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    ResolveBaseURL(baseURL),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Templates fetches the template catalog from GET /templates.
func (c *Client) Templates(ctx context.Context) ([]string, error) {
	url := c.baseURL + "/templates"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, Message: "failed to create request", Cause: err}
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var catalog types.TemplateCatalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, &RequestError{URL: url, Message: "failed to decode template catalog", Cause: err}
	}
	return catalog.Templates, nil
}

// Generate posts a generation request to POST /generate_resume. The response
// body is returned raw: text for html, binary for pdf.
func (c *Client) Generate(ctx context.Context, genReq types.GenerationRequest) ([]byte, error) {
	url := c.baseURL + "/generate_resume"

	payload, err := json.Marshal(genReq)
	if err != nil {
		return nil, &RequestError{URL: url, Message: "failed to encode generation request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// UploadResume sends file content as a multipart body to POST /upload_resume.
func (c *Client) UploadResume(ctx context.Context, filename string, content io.Reader) (*types.ParsedResumeData, error) {
	url := c.baseURL + "/upload_resume"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &RequestError{URL: url, Message: "failed to build multipart body", Cause: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, &RequestError{URL: url, Message: "failed to read upload content", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &RequestError{URL: url, Message: "failed to finalize multipart body", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, &RequestError{URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.decodeParsed(url, req)
}

// UploadResumePath asks the backend to parse a file on its local filesystem
// via POST /upload_resume_path.
func (c *Client) UploadResumePath(ctx context.Context, filePath string) (*types.ParsedResumeData, error) {
	url := c.baseURL + "/upload_resume_path"

	payload, err := json.Marshal(map[string]string{"file_path": filePath})
	if err != nil {
		return nil, &RequestError{URL: url, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.decodeParsed(url, req)
}

// decodeParsed executes an extraction request and decodes the parsed result.
func (c *Client) decodeParsed(url string, req *http.Request) (*types.ParsedResumeData, error) {
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed types.ParsedResumeData
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &RequestError{URL: url, Message: "failed to decode extraction result", Cause: err}
	}
	return &parsed, nil
}

// do executes the request and returns the raw body, mapping transport
// failures to RequestError and non-2xx statuses to StatusError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{URL: req.URL.String(), Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: req.URL.String(), Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}

// String renders a short description for logging.
func (c *Client) String() string {
	return fmt.Sprintf("backend.Client(%s)", c.baseURL)
}
