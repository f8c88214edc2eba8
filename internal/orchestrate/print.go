package orchestrate

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-studio/internal/types"
)

// printShell wraps an already-generated HTML preview in a minimal standalone
// page sized for printing: fixed A4 page rule, the shared print stylesheet,
// and a script that opens the print dialog on load.
const printShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Resume</title>
<link rel="stylesheet" href="/static/print.css">
<style>@page { size: A4; margin: 12mm; } body { margin: 0; }</style>
</head>
<body>
%s
<script>window.onload = function() { window.print(); };</script>
</body>
</html>
`

// PrintDocument wraps HTML in the standalone print shell. This is pure string
// templating over content that was already rendered; no generation call.
func PrintDocument(html string) string {
	return fmt.Sprintf(printShell, html)
}

// PrintView returns a print-ready document for the draft. A preview cached
// from a prior HTML generation for the same session is reused; otherwise one
// HTML generation runs first.
func (g *Generator) PrintView(ctx context.Context, draft types.ResumeData, opts GenerateOptions) (string, error) {
	if html, ok := g.cachedPreview(opts.SessionID); ok {
		return PrintDocument(html), nil
	}

	opts.Format = types.FormatHTML
	result, err := g.Generate(ctx, draft, opts)
	if err != nil {
		return "", err
	}
	return PrintDocument(result.HTML), nil
}
