// Package enhance implements the deterministic content-normalization pass
// applied to a resume draft before generation. Every transform is a total
// function: empty or missing input never fails, it just produces empty output.
package enhance

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-studio/internal/types"
)

// Enhance returns a normalized copy of the draft. The input is never mutated;
// callers keep editing their original draft after generation.
func Enhance(data types.ResumeData) types.ResumeData {
	out := data.Clone()

	out.Skills = DedupeSkills(out.Skills)

	for i := range out.WorkExperience {
		out.WorkExperience[i].Description = NormalizeBullets(out.WorkExperience[i].Description)
	}

	out.Summary = NormalizeSummary(out.Summary, out.Skills, out.WorkExperience)

	return out
}

// collapseWhitespace trims the string and collapses internal whitespace runs
// to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// capitalizeFirst upper-cases the first letter of s.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// lowerFirst lower-cases the first letter of s.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// truncate limits s to max runes. When the text is cut, the returned string
// ends with an ellipsis marker and still fits within max.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
