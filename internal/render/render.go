// Package render produces a Markdown view of a document for reviewing what
// the flattener will see before a note is imported.
package render

import (
	"fmt"
	"regexp"
	"strings"

	markdown "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/net/html"

	"github.com/odysseus0/ankiconv/internal/flatten"
)

var wsRegexp = regexp.MustCompile(`\s+`)

type Renderer struct {
	converter *markdown.Converter
}

func NewRenderer() *Renderer {
	c := markdown.NewConverter("", true, nil)
	return &Renderer{converter: c}
}

// Preview parses contents the same way the flattener does and returns the
// sanitized body as Markdown.
func (r *Renderer) Preview(contents string) (string, error) {
	doc, err := html.Parse(strings.NewReader(flatten.NormalizeLineBreaks(contents)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return r.HTMLToMarkdown(SanitizeBody(doc)), nil
}

func (r *Renderer) HTMLToMarkdown(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	out, err := r.converter.ConvertString(raw)
	if err != nil {
		return compactText(raw)
	}
	return strings.TrimSpace(out)
}

func compactText(v string) string {
	return strings.TrimSpace(wsRegexp.ReplaceAllString(v, " "))
}
