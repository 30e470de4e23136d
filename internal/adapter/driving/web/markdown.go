package web

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	bioRenderer  goldmark.Markdown
	bioSanitizer *bluemonday.Policy
)

func init() {
	// Raw HTML in a bio is dropped by goldmark; bluemonday then strips
	// anything unsafe that markdown itself can produce (javascript: links).
	bioRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	bioSanitizer = bluemonday.UGCPolicy()
	bioSanitizer.RequireNoFollowOnLinks(true)
	bioSanitizer.AddTargetBlankToFullyQualifiedLinks(true)
}

// RenderMarkdown converts a profile bio written in markdown to sanitized HTML.
// Returns empty string for empty input.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := bioRenderer.Convert([]byte(src), &buf); err != nil {
		return bioSanitizer.Sanitize(src)
	}

	return bioSanitizer.Sanitize(buf.String())
}
