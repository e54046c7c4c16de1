package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	xhtml "golang.org/x/net/html"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"markdown", Markdown, false},
		{"Markdown", Markdown, false},
		{"HTML", HTML, false},
		{"plain", Plain, false},
		{"text", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRender_Headings(t *testing.T) {
	var r Renderer
	blocks := []Block{{Heading: "background", Body: "Some context."}}

	tests := []struct {
		format Format
		want   string
	}{
		{Markdown, "### BACKGROUND\n\nSome context."},
		{HTML, "<h3>BACKGROUND</h3>\n\nSome context."},
		{Plain, "\nBACKGROUND\n==========\n\nSome context."},
	}

	for _, tt := range tests {
		if got := r.Render(blocks, tt.format); got != tt.want {
			t.Errorf("Render(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRender_HeadingOnlyWhenPresent(t *testing.T) {
	var r Renderer

	out := r.Render([]Block{{Body: "Just a body."}}, Markdown)
	if out != "Just a body." {
		t.Errorf("Render = %q", out)
	}

	out = r.Render([]Block{{Heading: "results"}}, Markdown)
	if out != "### RESULTS" {
		t.Errorf("Render = %q", out)
	}
}

func TestRender_BlocksSeparatedByBlankLines(t *testing.T) {
	var r Renderer
	blocks := []Block{{Body: "First paragraph."}, {Body: "Second paragraph."}}

	out := r.Render(blocks, Plain)
	want := "First paragraph.\n\nSecond paragraph."
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestRender_MarkdownEmphasis(t *testing.T) {
	var r Renderer
	blocks := []Block{{Body: "Accuracy reached 95% (MRI) with p < 0.05."}}

	out := r.Render(blocks, Markdown)
	want := "Accuracy reached **95%** (**MRI**) with **p < 0.05**."
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}

	// The emphasis must survive a real markdown renderer.
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(out), &buf); err != nil {
		t.Fatalf("goldmark.Convert failed: %v", err)
	}
	converted := buf.String()
	for _, frag := range []string{"<strong>95%</strong>", "<strong>MRI</strong>"} {
		if !strings.Contains(converted, frag) {
			t.Errorf("converted markdown missing %q:\n%s", frag, converted)
		}
	}
}

// countStrong walks a parsed HTML tree counting <strong> elements.
func countStrong(n *xhtml.Node) int {
	count := 0
	if n.Type == xhtml.ElementNode && n.Data == "strong" {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countStrong(c)
	}
	return count
}

func TestRender_HTMLEmphasis(t *testing.T) {
	var r Renderer
	blocks := []Block{{Body: "Accuracy reached 95% (MRI) with p < 0.05."}}

	out := r.Render(blocks, HTML)

	if !strings.Contains(out, "<strong>95%</strong>") {
		t.Errorf("missing measurement emphasis:\n%s", out)
	}
	if !strings.Contains(out, "(<strong>MRI</strong>)") {
		t.Errorf("missing abbreviation emphasis:\n%s", out)
	}
	if !strings.Contains(out, "<strong>p &lt; 0.05</strong>") {
		t.Errorf("missing p-value emphasis:\n%s", out)
	}

	doc, err := xhtml.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("output is not parseable HTML: %v", err)
	}
	if got := countStrong(doc); got != 3 {
		t.Errorf("got %d <strong> elements, want 3:\n%s", got, out)
	}
}

func TestRender_HTMLEscapesBody(t *testing.T) {
	var r Renderer
	blocks := []Block{{Heading: "a<b", Body: "x < y & z"}}

	out := r.Render(blocks, HTML)
	if !strings.Contains(out, "<h3>A&lt;B</h3>") {
		t.Errorf("heading not escaped:\n%s", out)
	}
	if !strings.Contains(out, "x &lt; y &amp; z") {
		t.Errorf("body not escaped:\n%s", out)
	}
}

func TestRender_PlainHasNoMarkup(t *testing.T) {
	var r Renderer
	blocks := []Block{{Body: "Accuracy reached 95% (MRI) with p < 0.05."}}

	out := r.Render(blocks, Plain)
	want := "Accuracy reached 95% (MRI) with p < 0.05."
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestRender_CollapsesWhitespace(t *testing.T) {
	var r Renderer
	blocks := []Block{{Body: "spread   across\n\tseveral    gaps"}}

	out := r.Render(blocks, Plain)
	if out != "spread across several gaps" {
		t.Errorf("Render = %q", out)
	}
}

func TestRender_EmptyBodySkipped(t *testing.T) {
	var r Renderer

	out := r.Render([]Block{{Body: "   "}, {Body: "kept"}}, Plain)
	if out != "kept" {
		t.Errorf("Render = %q, want %q", out, "kept")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits on one line", "aaa bbb", 10, "aaa bbb"},
		{"breaks at width", "aaa bbb ccc ddd", 10, "aaa bbb\nccc ddd"},
		{"exact fit", "aaaa bbbbb", 10, "aaaa bbbbb"},
		{"long word on own line", "a supercalifragilistic b", 10, "a\nsupercalifragilistic\nb"},
		{"zero width uses default", strings.Repeat("w ", 50) + "end", 0, ""},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if tt.name == "zero width uses default" {
				for _, line := range strings.Split(got, "\n") {
					if len(line) > DefaultWidth {
						t.Errorf("line exceeds default width: %q", line)
					}
				}
				return
			}
			if got != tt.want {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestRenderer_WidthApplied(t *testing.T) {
	r := Renderer{Width: 20}
	blocks := []Block{{Body: "the quick brown fox jumps over the lazy dog"}}

	out := r.Render(blocks, Plain)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 20 {
			t.Errorf("line exceeds width 20: %q", line)
		}
	}
}
