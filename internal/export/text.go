// Package export converts rendered HTML previews into plain text, for
// pasting resumes into ATS forms that reject rich content.
package export

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists elements that end a line in the text rendering.
const blockSelector = "p, div, li, h1, h2, h3, h4, h5, h6, br, tr, section"

// HTMLToText parses a rendered resume preview and returns its readable text.
// Script and style content is dropped; block elements become line breaks;
// runs of blank lines collapse to one.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, link").Remove()

	// Force line breaks at block boundaries before flattening to text.
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	return cleanLines(body.Text()), nil
}

// cleanLines trims each line and collapses blank-line runs.
func cleanLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
