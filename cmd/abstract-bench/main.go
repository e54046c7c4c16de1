// Command abstract-bench evaluates paragraph grouping against a corpus of
// annotated abstracts (ground-truth paragraphs separated by blank lines).
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	abstract "github.com/jamesainslie/go-abstract"
	"github.com/jamesainslie/go-abstract/internal/bench"
)

func main() {
	var (
		corpusDir = flag.String("corpus", "testdata/abstracts", "Directory containing annotated abstract files")
		maxGroup  = flag.Int("max-group", 4, "Hard cap on sentences per paragraph")
		ratio     = flag.Float64("shift-ratio", 0.3, "Entity-shift overlap threshold")
		tolerance = flag.Int("tolerance", 1, "Sentence-index tolerance for break matching")
		wp        = flag.Float64("wp", 1.0, "Precision weight")
		wr        = flag.Float64("wr", 1.0, "Recall weight")
		sweep     = flag.Bool("sweep", false, "Sweep group caps and shift ratios")
		caps      = flag.String("caps", "3,4,5,6", "Comma-separated group caps for sweep")
		ratioMin  = flag.Float64("ratio-min", 0.1, "Sweep minimum shift ratio")
		ratioMax  = flag.Float64("ratio-max", 0.6, "Sweep maximum shift ratio")
		ratioStep = flag.Float64("ratio-step", 0.1, "Sweep ratio step size")
	)
	flag.Parse()

	abstracts, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d abstracts from %s\n\n", len(abstracts), *corpusDir)

	cfg := bench.Config{
		MaxGroup:        *maxGroup,
		ShiftRatio:      *ratio,
		Tolerance:       *tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	if *sweep {
		runSweep(abstracts, *caps, *ratioMin, *ratioMax, *ratioStep, cfg)
		return
	}

	runSingle(abstracts, cfg)
}

func runSingle(abstracts []*bench.Abstract, cfg bench.Config) {
	g := abstract.NewDiscourseGrouper(cfg.MaxGroup, cfg.ShiftRatio)

	var totalTP, totalFP, totalFN int
	for _, ab := range abstracts {
		m := bench.EvaluateAbstract(g, ab, cfg)
		totalTP += m.TruePositives
		totalFP += m.FalsePositives
		totalFN += m.FalseNegatives
	}

	m := bench.Compute(totalTP, totalFP, totalFN, cfg)
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d)\n", totalTP, totalFP, totalFN)
}

func runSweep(abstracts []*bench.Abstract, capList string, min, max, step float64, cfg bench.Config) {
	caps, err := parseCaps(capList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	ratios := bench.SweepRatios(min, max, step)

	fmt.Printf("Grouping Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("%-6s %-8s %-8s %-8s %-8s %-8s\n", "Cap", "Ratio", "Prec", "Rec", "F1", "Weighted")

	results := bench.Sweep(abstracts, caps, ratios, cfg)

	// Print in parameter order for readability
	for _, cap := range caps {
		for _, ratio := range ratios {
			for _, r := range results {
				if r.MaxGroup == cap && r.ShiftRatio == ratio {
					fmt.Printf("%-6d %-8.2f %-8.2f %-8.2f %-8.2f %-8.2f\n",
						r.MaxGroup, r.ShiftRatio,
						r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
					break
				}
			}
		}
	}

	fmt.Println(strings.Repeat("-", 56))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: cap=%d ratio=%.2f (Weighted: %.2f)\n",
			best.MaxGroup, best.ShiftRatio, best.Metrics.WeightedScore)
	}
}

func parseCaps(s string) ([]int, error) {
	var caps []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid cap %q", part)
		}
		caps = append(caps, n)
	}
	return caps, nil
}
