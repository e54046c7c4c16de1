// Command abstract-fmt reformats scientific abstracts for readability.
//
// Usage: abstract-fmt [OPTIONS] [FILE]
//
// Reads from FILE or stdin. Model paths may also come from the
// environment (ABSTRACT_MODEL, ABSTRACT_NER_MODEL, ABSTRACT_TOKENIZER),
// optionally via a .env file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	abstract "github.com/jamesainslie/go-abstract"
	"github.com/jamesainslie/go-abstract/nlp"
	"github.com/jamesainslie/go-abstract/render"
)

type envConfig struct {
	Model     string `env:"ABSTRACT_MODEL"`
	NERModel  string `env:"ABSTRACT_NER_MODEL"`
	Tokenizer string `env:"ABSTRACT_TOKENIZER"`
	LineWidth int    `env:"ABSTRACT_LINE_WIDTH" envDefault:"80"`
}

func main() {
	// .env is optional; real environment wins either way.
	_ = godotenv.Load()

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	var (
		format    = flag.String("format", "markdown", "Output format: markdown, html or plain")
		width     = flag.Int("width", cfg.LineWidth, "Maximum line width for text wrapping")
		analyze   = flag.Bool("analyze", false, "Show analysis information instead of formatting")
		basic     = flag.Bool("basic", false, "Use heuristic formatting only (skip NLP models)")
		model     = flag.String("model", cfg.Model, "Path to sentence-boundary ONNX model")
		nerModel  = flag.String("ner-model", cfg.NERModel, "Path to NER ONNX model (optional)")
		tokenizer = flag.String("tokenizer", cfg.Tokenizer, "Path to tokenizer.json")
		output    = flag.String("o", "", "Output file (default: stdout)")
	)
	flag.Parse()

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "Error: no input text provided")
		os.Exit(1)
	}

	outFormat, err := render.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts := []abstract.Option{
		abstract.WithLineWidth(*width),
		abstract.WithLogger(logger),
	}

	if !*basic && *model != "" && *tokenizer != "" {
		seg, err := nlp.NewModel(nlp.ModelConfig{
			BoundaryModel: *model,
			EntityModel:   *nerModel,
			TokenizerFile: *tokenizer,
		})
		if err != nil {
			// Degraded output beats no output; say so and continue.
			fmt.Fprintf(os.Stderr, "Warning: NLP models unavailable (%v), using heuristics\n", err)
		} else {
			defer func() { _ = seg.Close() }()
			opts = append(opts, abstract.WithSegmenter(seg))
		}
	}

	formatter := abstract.New(opts...)

	var out string
	if *analyze {
		out = analysisReport(formatter.Analyze(text))
	} else {
		out, err = formatter.Format(context.Background(), text, outFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Formatted abstract saved to: %s\n", *output)
		return
	}

	fmt.Println(out)
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func analysisReport(a abstract.Analysis) string {
	var b strings.Builder

	b.WriteString("ABSTRACT ANALYSIS\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Length: %d characters\n", a.Length)
	fmt.Fprintf(&b, "Words: %d\n", a.WordCount)
	fmt.Fprintf(&b, "Sentences: %d\n", a.SentenceCount)
	if a.SentenceCount > 0 {
		fmt.Fprintf(&b, "Average sentence length: %.1f words\n",
			float64(a.WordCount)/float64(a.SentenceCount))
	}
	fmt.Fprintf(&b, "Structured sections: %v\n", a.HasStructuredSections)

	if len(a.Headers) > 0 {
		b.WriteString("\nSection headers found:\n")
		for _, h := range a.Headers {
			fmt.Fprintf(&b, "  - %s: %q at position %d\n", h.Label, strings.TrimSpace(h.Text), h.Start)
		}
	}

	if len(a.TechnicalTerms) > 0 {
		fmt.Fprintf(&b, "\nTechnical terms: %d\n", len(a.TechnicalTerms))
		fmt.Fprintf(&b, "  %s\n", preview(a.TechnicalTerms))
	}

	if len(a.Measurements) > 0 {
		fmt.Fprintf(&b, "\nMeasurements: %d\n", len(a.Measurements))
		fmt.Fprintf(&b, "  %s\n", preview(a.Measurements))
	}

	return strings.TrimRight(b.String(), "\n")
}

func preview(items []string) string {
	const max = 10
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:max], ", ") + "..."
}
