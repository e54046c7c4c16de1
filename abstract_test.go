package abstract

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jamesainslie/go-abstract/nlp"
	"github.com/jamesainslie/go-abstract/render"
)

// fakeSegmenter returns canned sentences or a fixed error.
type fakeSegmenter struct {
	sentences []nlp.Sentence
	err       error
}

func (f *fakeSegmenter) Sentences(_ context.Context, _ string) ([]nlp.Sentence, error) {
	return f.sentences, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFormat_EmptyInput(t *testing.T) {
	f := New()

	for _, text := range []string{"", "   ", "\n\t\n"} {
		out, err := f.Format(context.Background(), text, render.Markdown)
		if err != nil {
			t.Errorf("Format(%q) error: %v", text, err)
		}
		if out != "" {
			t.Errorf("Format(%q) = %q, want empty", text, out)
		}
	}
}

func TestFormat_StructuredMarkdown(t *testing.T) {
	f := New()

	out, err := f.Format(context.Background(), "BACKGROUND: A. METHODS: B.", render.Markdown)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}

	want := "### BACKGROUND\n\nA.\n\n### METHODS\n\nB."
	if out != want {
		t.Errorf("Format = %q, want %q", out, want)
	}
}

func TestFormat_StructuredPlain(t *testing.T) {
	f := New()

	out, err := f.Format(context.Background(), "RESULTS: Accuracy improved.", render.Plain)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}

	if !strings.Contains(out, "RESULTS\n=======") {
		t.Errorf("plain output missing underlined heading:\n%s", out)
	}
	if strings.Contains(out, "<h3>") || strings.Contains(out, "###") {
		t.Errorf("plain output contains markup:\n%s", out)
	}
}

func TestFormat_IntroSectionHasNoHeading(t *testing.T) {
	f := New()

	out, err := f.Format(context.Background(), "Lead-in text here. METHODS: We measured.", render.Markdown)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}

	want := "Lead-in text here.\n\n### METHODS\n\nWe measured."
	if out != want {
		t.Errorf("Format = %q, want %q", out, want)
	}
}

func TestFormat_UnstructuredHeuristics(t *testing.T) {
	f := New()

	text := "The data was collected. It was cleaned. Analysis followed. " +
		"We tested the model. Results showed gains."
	out, err := f.Format(context.Background(), text, render.Markdown)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}

	if strings.Contains(out, "###") {
		t.Errorf("unstructured output has headings:\n%s", out)
	}
	paragraphs := strings.Split(out, "\n\n")
	if len(paragraphs) != 3 {
		t.Errorf("got %d paragraphs, want 3:\n%s", len(paragraphs), out)
	}
}

func TestFormat_SegmenterPath(t *testing.T) {
	seg := &fakeSegmenter{sentences: []nlp.Sentence{
		{Text: "We tested X."},
		{Text: "Results showed Y."},
		{Text: "However, Z happened."},
		{Text: "Additionally, W."},
		{Text: "Consequently, V."},
	}}
	f := New(WithSegmenter(seg))

	out, err := f.Format(context.Background(), "irrelevant raw text here", render.Markdown)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}

	want := "We tested X. Results showed Y.\n\n" +
		"However, Z happened. Additionally, W.\n\n" +
		"Consequently, V."
	if out != want {
		t.Errorf("Format = %q, want %q", out, want)
	}
}

func TestFormat_SegmenterFailureFallsBack(t *testing.T) {
	seg := &fakeSegmenter{err: errors.New("model exploded")}
	f := New(WithSegmenter(seg), WithLogger(quietLogger()))

	text := "The data was collected. It was cleaned. Analysis followed. We tested the model."
	out, err := f.Format(context.Background(), text, render.Plain)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if out == "" {
		t.Error("expected heuristic output, got empty string")
	}
}

func TestFormat_SegmenterCancellationPropagates(t *testing.T) {
	seg := &fakeSegmenter{err: context.Canceled}
	f := New(WithSegmenter(seg), WithLogger(quietLogger()))

	_, err := f.Format(context.Background(), "Some unstructured text without headers.", render.Plain)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFormat_SegmenterEmptyResultFallsBack(t *testing.T) {
	seg := &fakeSegmenter{}
	f := New(WithSegmenter(seg), WithLogger(quietLogger()))

	text := "The data was collected. It was cleaned. Analysis followed. We tested the model."
	out, err := f.Format(context.Background(), text, render.Plain)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if out == "" {
		t.Error("expected heuristic output, got empty string")
	}
}

func TestFormat_LineWidth(t *testing.T) {
	f := New(WithLineWidth(30))

	text := "The quick brown fox jumps over the lazy dog near the riverbank today."
	out, err := f.Format(context.Background(), text, render.Plain)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}

	for _, line := range strings.Split(out, "\n") {
		if len(line) > 30 {
			t.Errorf("line exceeds width 30: %q", line)
		}
	}
}

func TestNew_OptionDefaults(t *testing.T) {
	// Out-of-range values fall back to defaults rather than failing.
	f := New(
		WithLineWidth(-1),
		WithMaxGroupSize(0),
		WithEntityShiftRatio(-0.5),
		WithLogger(nil),
	)

	out, err := f.Format(context.Background(), "BACKGROUND: A.", render.Markdown)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if out != "### BACKGROUND\n\nA." {
		t.Errorf("Format = %q", out)
	}
}

func TestAnalyzeAccessor(t *testing.T) {
	f := New()

	analysis := f.Analyze("METHODS: We scanned (MRI) images.")
	if !analysis.HasStructuredSections {
		t.Error("expected structured analysis")
	}
	if len(analysis.TechnicalTerms) != 1 || analysis.TechnicalTerms[0] != "MRI" {
		t.Errorf("TechnicalTerms = %v, want [MRI]", analysis.TechnicalTerms)
	}
}
