package bench

import (
	"sort"

	abstract "github.com/jamesainslie/go-abstract"
)

// SweepResult holds metrics for one grouper parameterization.
type SweepResult struct {
	MaxGroup   int
	ShiftRatio float64
	Metrics    Metrics
}

// SweepRatios generates shift-ratio values from min to max with given step.
func SweepRatios(min, max, step float64) []float64 {
	var ratios []float64
	for r := min; r < max; r += step {
		ratios = append(ratios, r)
	}
	return ratios
}

// Sweep evaluates every combination of group cap and shift ratio over the
// corpus and returns results sorted by weighted score descending.
func Sweep(abstracts []*Abstract, caps []int, ratios []float64, cfg Config) []SweepResult {
	var results []SweepResult

	for _, cap := range caps {
		for _, ratio := range ratios {
			g := abstract.NewDiscourseGrouper(cap, ratio)

			// Aggregate counts across all abstracts
			var totalTP, totalFP, totalFN int
			for _, ab := range abstracts {
				m := EvaluateAbstract(g, ab, cfg)
				totalTP += m.TruePositives
				totalFP += m.FalsePositives
				totalFN += m.FalseNegatives
			}

			results = append(results, SweepResult{
				MaxGroup:   cap,
				ShiftRatio: ratio,
				Metrics:    Compute(totalTP, totalFP, totalFN, cfg),
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results
}
