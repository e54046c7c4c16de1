package bench

import (
	abstract "github.com/jamesainslie/go-abstract"
	"github.com/jamesainslie/go-abstract/nlp"
)

// Config holds evaluation parameters.
type Config struct {
	MaxGroup        int     // grouper hard cap on group size
	ShiftRatio      float64 // entity-shift overlap threshold
	Tolerance       int     // sentence-index match tolerance
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		MaxGroup:        4,
		ShiftRatio:      0.3,
		Tolerance:       1,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Evaluate compares predicted paragraph breaks against ground truth.
// Uses greedy left-to-right matching within tolerance.
func Evaluate(predicted, truth []int, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			diff := p - t
			if diff < 0 {
				diff = -diff
			}
			if diff <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	fp := len(predicted) - tp
	fn := len(truth) - tp

	return Compute(tp, fp, fn, cfg)
}

// Compute derives rate metrics from raw counts.
func Compute(tp, fp, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m
}

// EvaluateAbstract runs the discourse grouper over one abstract's
// sentences and scores the predicted breaks.
func EvaluateAbstract(g *abstract.DiscourseGrouper, ab *Abstract, cfg Config) Metrics {
	sentences := make([]nlp.Sentence, len(ab.Sentences))
	for i, s := range ab.Sentences {
		sentences[i] = nlp.Sentence{Text: s}
	}

	groups := g.Group(sentences)

	var predicted []int
	idx := 0
	for i, group := range groups {
		if i > 0 {
			predicted = append(predicted, idx)
		}
		idx += len(group)
	}

	return Evaluate(predicted, ab.Breaks, cfg)
}
