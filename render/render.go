// Package render turns the engine's section and paragraph boundaries into
// final text: heading markup, inline emphasis of technical terms and
// measurements, and line wrapping.
package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Format selects the output markup.
type Format string

// Supported output formats.
const (
	Markdown Format = "markdown"
	HTML     Format = "html"
	Plain    Format = "plain"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case Markdown:
		return Markdown, nil
	case HTML:
		return HTML, nil
	case Plain:
		return Plain, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Block is one renderable unit handed off by the engine: an optional
// heading plus raw, unformatted body text.
type Block struct {
	Heading string
	Body    string
}

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 80

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	abbreviationRe = regexp.MustCompile(`\(([A-Z]{2,})\)`)
	measurementRe  = regexp.MustCompile(`(\b\d+(?:\.\d+)?(?:\s*[%±](?:\s*\d+(?:\.\d+)?)?|\s*-\s*\d+(?:\.\d+)?|×))`)
	pValueRe       = regexp.MustCompile(`([<>=]?\s*p\s*[<>=]\s*0\.\d+)`)
	// After HTML escaping, comparison operators appear as entities.
	pValueHTMLRe = regexp.MustCompile(`((?:&lt;|&gt;|=)?\s*p\s*(?:&lt;|&gt;|=)\s*0\.\d+)`)
)

// Renderer produces formatted output at a fixed wrap width. The zero
// value renders at DefaultWidth.
type Renderer struct {
	Width int
}

// Render formats blocks, separated by blank lines. Blocks without a
// heading render body-only.
func (r Renderer) Render(blocks []Block, format Format) string {
	var parts []string
	for _, b := range blocks {
		if b.Heading != "" {
			parts = append(parts, r.heading(b.Heading, format))
		}
		if body := r.body(b.Body, format); body != "" {
			parts = append(parts, body)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r Renderer) heading(text string, format Format) string {
	text = strings.ToUpper(text)
	switch format {
	case Markdown:
		return "### " + text
	case HTML:
		return "<h3>" + html.EscapeString(text) + "</h3>"
	default:
		return "\n" + text + "\n" + strings.Repeat("=", len(text))
	}
}

// body collapses whitespace, applies emphasis markup, and wraps.
func (r Renderer) body(text string, format Format) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	if text == "" {
		return ""
	}

	switch format {
	case Markdown:
		text = abbreviationRe.ReplaceAllString(text, "(**$1**)")
		text = measurementRe.ReplaceAllString(text, "**$1**")
		text = pValueRe.ReplaceAllString(text, "**$1**")
	case HTML:
		text = html.EscapeString(text)
		text = abbreviationRe.ReplaceAllString(text, "(<strong>$1</strong>)")
		text = measurementRe.ReplaceAllString(text, "<strong>$1</strong>")
		text = pValueHTMLRe.ReplaceAllString(text, "<strong>$1</strong>")
	}

	return Wrap(text, r.width())
}

func (r Renderer) width() int {
	if r.Width > 0 {
		return r.Width
	}
	return DefaultWidth
}

// Wrap greedily wraps text at width, breaking only at spaces. Words longer
// than the width stay on their own line.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		if lineLen+1+len(word) > width {
			b.WriteByte('\n')
			b.WriteString(word)
			lineLen = len(word)
		} else {
			b.WriteByte(' ')
			b.WriteString(word)
			lineLen += 1 + len(word)
		}
	}
	return b.String()
}
