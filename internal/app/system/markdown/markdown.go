// Package markdown renders the markdown body of content items to sanitized
// HTML for the public detail pages.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dalemusser/vastusite/internal/app/system/htmlsanitize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// engine is safe for concurrent use.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		// Raw HTML is allowed through goldmark and then sanitized.
		html.WithUnsafe(),
	),
)

// Render converts markdown to HTML and sanitizes the result.
func Render(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := engine.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return htmlsanitize.SanitizeToHTML(buf.String()), nil
}

// MustRender is Render for templates: on error it falls back to the
// escaped source so a page never fails on bad markdown.
func MustRender(src string) template.HTML {
	out, err := Render(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return out
}
