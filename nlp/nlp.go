// Package nlp provides the sentence and entity segmentation capability
// consumed by the formatting engine.
//
// Two implementations exist: Model, backed by ONNX token-classification
// models, and Rule, a punctuation-based splitter with no entity support.
// Callers pick one at construction time; the engine treats a missing
// capability as a signal to use its own heuristics, never as an error.
package nlp

import (
	"context"
	"regexp"
	"strings"
)

// Label is a coarse named-entity type.
type Label string

// Entity labels recognized by the engine. Anything else a model emits is
// ignored by downstream grouping.
const (
	LabelOrganization Label = "ORG"
	LabelProduct      Label = "PROD"
	LabelLocation     Label = "LOC"
	LabelPerson       Label = "PER"
)

// Entity is a named-entity span within a sentence.
type Entity struct {
	Text  string
	Label Label
}

// Sentence is one segmented sentence with any entities found in it.
type Sentence struct {
	Text     string
	Entities []Entity
}

// Segmenter splits text into sentences, optionally annotating entities.
type Segmenter interface {
	Sentences(ctx context.Context, text string) ([]Sentence, error)
}

// punctBoundary matches a sentence-terminal character followed by
// whitespace. Splitting happens after the punctuation, which RE2 cannot
// express with lookbehind, so SplitPunct works from match offsets instead.
var punctBoundary = regexp.MustCompile(`[.!?]\s+`)

// SplitPunct splits text at sentence-terminal punctuation followed by
// whitespace, keeping the punctuation. Empty results are dropped.
func SplitPunct(text string) []string {
	var sentences []string
	start := 0
	for _, m := range punctBoundary.FindAllStringIndex(text, -1) {
		// m[0] is the punctuation character; the sentence ends just after it.
		end := m[0] + 1
		s := strings.TrimSpace(text[start:end])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = m[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// Rule is the basic Segmenter: punctuation splitting, no entities.
type Rule struct{}

// NewRule returns a rule-based segmenter.
func NewRule() *Rule {
	return &Rule{}
}

// Sentences implements Segmenter. It never fails.
func (r *Rule) Sentences(_ context.Context, text string) ([]Sentence, error) {
	parts := SplitPunct(text)
	if len(parts) == 0 {
		return nil, nil
	}
	sentences := make([]Sentence, len(parts))
	for i, p := range parts {
		sentences[i] = Sentence{Text: p}
	}
	return sentences, nil
}
