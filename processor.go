package abstract

import (
	"context"
	"strings"

	"github.com/jamesainslie/go-abstract/render"
)

// Word-count bounds separating abstracts from full-text articles.
const (
	minAbstractWords = 50
	maxAbstractWords = 2000
)

// Processor handles one kind of scientific document. Processors are
// consulted in order; the first whose predicate accepts the document wins.
type Processor interface {
	// CanProcess reports whether this processor handles the document.
	CanProcess(text string) bool

	// Process formats the document.
	Process(ctx context.Context, text string, format render.Format) (string, error)
}

// AbstractProcessor formats documents that look like abstracts.
type AbstractProcessor struct {
	formatter *Formatter
}

// NewAbstractProcessor wraps a Formatter as a Processor.
func NewAbstractProcessor(f *Formatter) *AbstractProcessor {
	return &AbstractProcessor{formatter: f}
}

// CanProcess accepts texts in the typical abstract length range.
func (p *AbstractProcessor) CanProcess(text string) bool {
	words := len(strings.Fields(text))
	return words >= minAbstractWords && words <= maxAbstractWords
}

// Process formats the abstract.
func (p *AbstractProcessor) Process(ctx context.Context, text string, format render.Format) (string, error) {
	return p.formatter.Format(ctx, text, format)
}

// FullTextProcessor recognizes full-text articles, which this package
// deliberately does not format. It exists so that oversized input fails
// with a specific error instead of a misleading abstract rendering.
type FullTextProcessor struct{}

// CanProcess accepts texts longer than any plausible abstract.
func (FullTextProcessor) CanProcess(text string) bool {
	return len(strings.Fields(text)) > maxAbstractWords
}

// Process always fails with ErrFullTextUnsupported.
func (FullTextProcessor) Process(context.Context, string, render.Format) (string, error) {
	return "", ErrFullTextUnsupported
}

// DocumentFormatter dispatches documents to the first capable processor.
type DocumentFormatter struct {
	processors []Processor
}

// NewDocumentFormatter builds the default processor chain around f.
func NewDocumentFormatter(f *Formatter) *DocumentFormatter {
	return &DocumentFormatter{
		processors: []Processor{
			NewAbstractProcessor(f),
			FullTextProcessor{},
		},
	}
}

// Prepend registers a processor ahead of the existing chain, giving it
// priority.
func (d *DocumentFormatter) Prepend(p Processor) {
	d.processors = append([]Processor{p}, d.processors...)
}

// FormatDocument routes the document to the first capable processor.
// Returns ErrNoProcessor when nothing accepts it.
func (d *DocumentFormatter) FormatDocument(ctx context.Context, text string, format render.Format) (string, error) {
	for _, p := range d.processors {
		if p.CanProcess(text) {
			return p.Process(ctx, text, format)
		}
	}
	return "", ErrNoProcessor
}
