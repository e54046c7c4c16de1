package abstract

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jamesainslie/go-abstract/nlp"
	"github.com/jamesainslie/go-abstract/render"
)

// Formatter reformats scientific abstracts. It holds only read-only
// configuration and is safe for concurrent use.
type Formatter struct {
	analyzer  Analyzer
	grouper   *DiscourseGrouper
	renderer  render.Renderer
	segmenter nlp.Segmenter
	logger    *slog.Logger
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Formatter{
		grouper:   NewDiscourseGrouper(cfg.maxGroup, cfg.shiftRatio),
		renderer:  render.Renderer{Width: cfg.lineWidth},
		segmenter: cfg.segmenter,
		logger:    cfg.logger,
	}
}

// Analyze returns the structural analysis for text without formatting it.
func (f *Formatter) Analyze(text string) Analysis {
	return f.analyzer.Analyze(text)
}

// Format reformats an abstract. Structured abstracts are split into
// labeled sections; unstructured ones are grouped into paragraphs.
// Whitespace-only input yields empty output without error; the caller
// decides whether that is worth reporting.
func (f *Formatter) Format(ctx context.Context, text string, format render.Format) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	analysis := f.analyzer.Analyze(text)

	if analysis.HasStructuredSections {
		return f.renderer.Render(sectionBlocks(analysis.Sections), format), nil
	}

	blocks, err := f.unstructuredBlocks(ctx, text)
	if err != nil {
		return "", err
	}
	return f.renderer.Render(blocks, format), nil
}

// unstructuredBlocks groups sentences into paragraphs. A configured
// segmenter enables the discourse-aware path; segmenter failure degrades
// to the lexical heuristics rather than failing the call.
func (f *Formatter) unstructuredBlocks(ctx context.Context, text string) ([]render.Block, error) {
	if f.segmenter != nil {
		sentences, err := f.segmenter.Sentences(ctx, text)
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case err != nil:
			f.logger.Warn("segmenter failed, falling back to heuristics", "error", err)
		case len(sentences) > 0:
			return groupBlocks(f.grouper.Group(sentences)), nil
		}
	}

	var blocks []render.Block
	for _, group := range GroupSentences(text) {
		blocks = append(blocks, render.Block{Body: strings.Join(group, " ")})
	}
	return blocks, nil
}

// sectionBlocks converts sections to renderable blocks. The unlabeled
// introductory section renders without a heading.
func sectionBlocks(sections []Section) []render.Block {
	var blocks []render.Block
	for _, s := range sections {
		b := render.Block{Body: s.Content}
		if s.Label != LabelUnknown {
			b.Heading = string(s.Label)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func groupBlocks(groups [][]nlp.Sentence) []render.Block {
	var blocks []render.Block
	for _, group := range groups {
		parts := make([]string, len(group))
		for i, s := range group {
			parts[i] = s.Text
		}
		blocks = append(blocks, render.Block{Body: strings.Join(parts, " ")})
	}
	return blocks
}
