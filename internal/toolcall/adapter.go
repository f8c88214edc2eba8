// Package toolcall exposes the orchestrator operations as a fixed catalog of
// named tools over the Model Context Protocol, for generic tool-invoking
// clients. It is the final error boundary: every failure becomes an
// error-tagged result envelope, nothing escapes to the transport.
package toolcall

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jonathan/resume-studio/internal/orchestrate"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// PDFMarker prefixes base64-encoded PDF payloads so callers can distinguish
// encoded binary from plain text.
const PDFMarker = "PDF_BASE64:"

// serverName identifies the tool server to clients.
const serverName = "resume-studio"

// Adapter binds the tool catalog to the orchestrators.
type Adapter struct {
	generator *orchestrate.Generator
	uploader  *orchestrate.Uploader
}

// New creates an Adapter over the given orchestrators.
func New(generator *orchestrate.Generator, uploader *orchestrate.Uploader) *Adapter {
	return &Adapter{generator: generator, uploader: uploader}
}

// Server builds the MCP server with the fixed tool catalog registered.
func (a *Adapter) Server(version string) *server.MCPServer {
	srv := server.NewMCPServer(serverName, version, server.WithToolCapabilities(false))

	srv.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the resume templates known to the rendering service."),
	), a.guard(a.listTemplates))

	srv.AddTool(mcp.NewTool("extract_resume_data",
		mcp.WithDescription("Extract structured resume data from a document on the local filesystem."),
		mcp.WithString("file_path", mcp.Required(),
			mcp.Description("Path to a resume document (PDF or DOCX).")),
	), a.guard(a.extractResumeData))

	srv.AddTool(mcp.NewTool("generate_resume_html",
		mcp.WithDescription("Render an HTML preview of the given resume data."),
		mcp.WithString("template",
			mcp.Description("Template identifier; the default template is used when omitted.")),
		mcp.WithObject("resume_data", mcp.Required(),
			mcp.Description("Structured resume data to render.")),
	), a.guard(a.generateResumeHTML))

	srv.AddTool(mcp.NewTool("generate_resume",
		mcp.WithDescription("Render the given resume data as HTML text or a base64-encoded PDF."),
		mcp.WithString("template",
			mcp.Description("Template identifier; the default template is used when omitted.")),
		mcp.WithObject("resume_data", mcp.Required(),
			mcp.Description("Structured resume data to render.")),
		mcp.WithString("format",
			mcp.Description("Output format: html (default) or pdf, case-insensitive.")),
	), a.guard(a.generateResume))

	return srv
}

// ServeStdio runs the tool server over stdin/stdout until the client
// disconnects.
func (a *Adapter) ServeStdio(version string) error {
	return server.ServeStdio(a.Server(version))
}

// toolHandler aliases the mcp-go tool handler signature.
type toolHandler = server.ToolHandlerFunc

// guard converts every failure, panics included, into an error-tagged tool
// result. Callers of this protocol expect a result envelope, never a fault.
func (a *Adapter) guard(h toolHandler) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[toolcall] recovered panic in %s: %v", request.Params.Name, r)
				result = mcp.NewToolResultError(fmt.Sprintf("internal error: %v", r))
				err = nil
			}
		}()

		result, err = h(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return result, nil
	}
}

// listTemplates returns the rendering service's template catalog verbatim as
// structured text.
func (a *Adapter) listTemplates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templates, err := a.generator.Templates(ctx)
	if err != nil {
		return nil, err
	}

	text, err := json.Marshal(types.TemplateCatalog{Templates: templates})
	if err != nil {
		return nil, fmt.Errorf("failed to encode template catalog: %w", err)
	}
	return mcp.NewToolResultText(string(text)), nil
}

// extractResumeData validates the path exists locally, then runs path-based
// extraction.
func (a *Adapter) extractResumeData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := request.RequireString("file_path")
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(filePath); statErr != nil {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	parsed, err := a.uploader.UploadByPath(ctx, filePath)
	if err != nil {
		return nil, err
	}

	text, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction result: %w", err)
	}
	return mcp.NewToolResultText(string(text)), nil
}

// generateResumeHTML always requests an HTML preview.
func (a *Adapter) generateResumeHTML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := resumeDataArgument(request)
	if err != nil {
		return nil, err
	}

	result, err := a.generator.Generate(ctx, data, orchestrate.GenerateOptions{
		Template: request.GetString("template", ""),
		Format:   types.FormatHTML,
	})
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(result.HTML), nil
}

// generateResume renders html or pdf; a pdf result is carried as
// PDF_BASE64:<base64> so the text envelope can hold binary content. Any
// format other than pdf falls back to the HTML preview rather than erroring,
// so tool clients always get a usable rendering.
func (a *Adapter) generateResume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := resumeDataArgument(request)
	if err != nil {
		return nil, err
	}

	format := types.FormatHTML
	if strings.EqualFold(strings.TrimSpace(request.GetString("format", "")), types.FormatPDF) {
		format = types.FormatPDF
	}

	result, err := a.generator.Generate(ctx, data, orchestrate.GenerateOptions{
		Template: request.GetString("template", ""),
		Format:   format,
	})
	if err != nil {
		return nil, err
	}

	if result.Kind == types.FormatPDF {
		return mcp.NewToolResultText(PDFMarker + base64.StdEncoding.EncodeToString(result.PDF)), nil
	}
	return mcp.NewToolResultText(result.HTML), nil
}

// resumeDataArgument extracts and schema-validates the resume_data argument.
func resumeDataArgument(request mcp.CallToolRequest) (types.ResumeData, error) {
	args := request.GetArguments()
	raw, ok := args["resume_data"]
	if !ok || raw == nil {
		return types.ResumeData{}, fmt.Errorf("resume_data is required")
	}

	if err := schemas.ValidateResumeData(raw); err != nil {
		return types.ResumeData{}, fmt.Errorf("invalid resume_data: %w", err)
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to encode resume_data: %w", err)
	}

	var data types.ResumeData
	if err := json.Unmarshal(encoded, &data); err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to decode resume_data: %w", err)
	}
	return data, nil
}
