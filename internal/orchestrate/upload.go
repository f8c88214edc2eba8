package orchestrate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/types"
)

// ErrNoUsableData indicates extraction completed transport-wise but produced
// no parseable content. Callers treat this as a soft outcome and fall back to
// manual entry instead of reporting a transport failure.
var ErrNoUsableData = errors.New("extraction returned no usable data")

// ErrMissingInput indicates an upload call with no file content or path.
type ErrMissingInput struct {
	What string
}

func (e *ErrMissingInput) Error() string {
	return fmt.Sprintf("missing required input: %s", e.What)
}

// Uploader wraps extraction-service calls and the merge of partial results
// into the live draft.
type Uploader struct {
	backend *backend.Client
}

// NewUploader creates an Uploader over the given backend client.
func NewUploader(client *backend.Client) *Uploader {
	return &Uploader{backend: client}
}

// UploadFile sends document content to the extraction service and returns the
// parsed partial resume. Empty content is rejected before any network call.
func (u *Uploader) UploadFile(ctx context.Context, filename string, content io.Reader) (*types.ParsedResumeData, error) {
	if filename == "" {
		return nil, &ErrMissingInput{What: "file name"}
	}

	var buf bytes.Buffer
	if content != nil {
		if _, err := io.Copy(&buf, content); err != nil {
			return nil, fmt.Errorf("failed to read upload content: %w", err)
		}
	}
	if buf.Len() == 0 {
		return nil, &ErrMissingInput{What: "file content"}
	}

	parsed, err := u.backend.UploadResume(ctx, filename, &buf)
	if err != nil {
		return nil, fmt.Errorf("upload extraction failed: %w", err)
	}
	return checkUsable(parsed)
}

// UploadByPath asks the extraction service to parse a file it can reach by
// path. An empty path is rejected before any network call.
func (u *Uploader) UploadByPath(ctx context.Context, path string) (*types.ParsedResumeData, error) {
	if path == "" {
		return nil, &ErrMissingInput{What: "file path"}
	}

	parsed, err := u.backend.UploadResumePath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("path extraction failed: %w", err)
	}
	return checkUsable(parsed)
}

// checkUsable converts an extraction result without parseable content into
// the soft ErrNoUsableData outcome.
func checkUsable(parsed *types.ParsedResumeData) (*types.ParsedResumeData, error) {
	if parsed.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrNoUsableData, parsed.Error)
	}
	if parsed.Parsed == nil || parsed.Parsed.IsEmpty() {
		return nil, ErrNoUsableData
	}
	log.Printf("[upload] extracted resume with confidence %.2f", parsed.Confidence)
	return parsed, nil
}

// MergeDraft applies a shallow merge of extracted fields onto the draft: each
// top-level field the extractor recovered overwrites the draft's field;
// fields absent from the extraction survive untouched. The draft itself is
// not mutated.
func MergeDraft(draft types.ResumeData, parsed *types.ResumeData) types.ResumeData {
	out := draft.Clone()
	if parsed == nil {
		return out
	}

	if parsed.PersonalInfo != (types.PersonalInfo{}) {
		out.PersonalInfo = parsed.PersonalInfo
	}
	if parsed.Summary != "" {
		out.Summary = parsed.Summary
	}
	if len(parsed.Education) > 0 {
		out.Education = append([]types.Education(nil), parsed.Education...)
	}
	if len(parsed.WorkExperience) > 0 {
		out.WorkExperience = append([]types.WorkExperience(nil), parsed.WorkExperience...)
	}
	if len(parsed.Projects) > 0 {
		out.Projects = append([]types.Project(nil), parsed.Projects...)
	}
	if len(parsed.Skills) > 0 {
		out.Skills = append([]types.Skill(nil), parsed.Skills...)
	}
	if len(parsed.Certifications) > 0 {
		out.Certifications = append([]types.Certification(nil), parsed.Certifications...)
	}
	if parsed.Template != "" {
		out.Template = parsed.Template
	}
	return out
}
