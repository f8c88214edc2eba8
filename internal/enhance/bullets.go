package enhance

import "strings"

const (
	// maxBulletLines is the maximum number of bullet lines kept per
	// work-experience description.
	maxBulletLines = 6
	// maxBulletChars is the maximum length of a single bullet line,
	// ellipsis marker included.
	maxBulletChars = 220
)

// actionVerbs is the fixed set of strong action verbs. A bullet already
// starting with one of these is left alone; otherwise a verb is chosen by
// line index modulo the set size, keeping output reproducible for identical
// input ordering.
var actionVerbs = []string{
	"Led",
	"Developed",
	"Implemented",
	"Designed",
	"Built",
	"Managed",
	"Created",
	"Improved",
	"Optimized",
	"Delivered",
	"Launched",
	"Automated",
}

// trailingPunct is stripped from the end of each bullet line.
const trailingPunct = " \t.,;:!"

// isBulletSeparator reports whether r splits a raw description into
// candidate bullet lines: newlines, carriage returns, bullet glyphs, and
// hyphen/dash characters.
func isBulletSeparator(r rune) bool {
	switch r {
	case '\n', '\r', '•', '◦', '▪', '‣', '·', '-', '–', '—':
		return true
	}
	return false
}

// startsWithActionVerb reports whether the first word of line matches one of
// the recognized action verbs, case-insensitively.
func startsWithActionVerb(line string) bool {
	first, _, _ := strings.Cut(line, " ")
	for _, verb := range actionVerbs {
		if strings.EqualFold(first, verb) {
			return true
		}
	}
	return false
}

// NormalizeBullets rewrites a free-text work-experience description into at
// most maxBulletLines newline-joined bullet lines. Empty input yields empty
// output; extra lines are dropped, never an error.
func NormalizeBullets(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}

	candidates := strings.FieldsFunc(description, isBulletSeparator)

	lines := make([]string, 0, maxBulletLines)
	for _, candidate := range candidates {
		line := collapseWhitespace(candidate)
		if line == "" {
			continue
		}
		if len(lines) == maxBulletLines {
			break
		}

		line = strings.TrimRight(capitalizeFirst(line), trailingPunct)
		if line == "" {
			continue
		}
		if !startsWithActionVerb(line) {
			verb := actionVerbs[len(lines)%len(actionVerbs)]
			line = verb + " " + lowerFirst(line)
		}
		lines = append(lines, truncate(line, maxBulletChars))
	}

	return strings.Join(lines, "\n")
}
