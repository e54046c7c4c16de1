package abstract

import (
	"log/slog"

	"github.com/jamesainslie/go-abstract/nlp"
)

// Option configures a Formatter.
type Option func(*config)

type config struct {
	lineWidth  int
	maxGroup   int
	shiftRatio float64
	segmenter  nlp.Segmenter
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		lineWidth:  80,
		maxGroup:   4,
		shiftRatio: 0.3,
		logger:     slog.Default(),
	}
}

// WithLineWidth sets the maximum output line width (default: 80).
func WithLineWidth(w int) Option {
	return func(c *config) {
		if w > 0 {
			c.lineWidth = w
		}
	}
}

// WithSegmenter sets the sentence segmentation capability. Without one the
// engine groups sentences using its own punctuation and lexical heuristics.
func WithSegmenter(s nlp.Segmenter) Option {
	return func(c *config) {
		c.segmenter = s
	}
}

// WithMaxGroupSize sets the hard cap on sentences per paragraph in the
// discourse-aware path (default: 4).
func WithMaxGroupSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxGroup = n
		}
	}
}

// WithEntityShiftRatio sets the entity-overlap ratio below which a topic
// shift is assumed (default: 0.3).
func WithEntityShiftRatio(r float64) Option {
	return func(c *config) {
		if r > 0 {
			c.shiftRatio = r
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
