package nlp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"github.com/jamesainslie/go-abstract/inference"
)

const (
	// maxSeqLen is the maximum sequence length supported by the models.
	// We use 512 to leave margin below the positional embedding limit.
	maxSeqLen = 512

	// chunkOverlap is the number of overlapping tokens between chunks,
	// so boundary detection works properly at chunk edges.
	chunkOverlap = 64
)

// defaultTagset is the BIO label inventory of the default entity model.
// Index 0 must be the outside tag.
var defaultTagset = []string{
	"O",
	"B-ORG", "I-ORG",
	"B-PER", "I-PER",
	"B-LOC", "I-LOC",
	"B-PROD", "I-PROD",
}

// ModelConfig configures the ONNX-backed segmenter.
type ModelConfig struct {
	// BoundaryModel is the path to the sentence-boundary ONNX model
	// (per-token end-of-sentence logits). Required.
	BoundaryModel string

	// EntityModel is the path to an optional NER ONNX model (per-token
	// BIO tag logits). When empty, sentences carry no entities.
	EntityModel string

	// TokenizerFile is the path to a HuggingFace tokenizer.json. Required.
	TokenizerFile string

	// Threshold is the boundary detection threshold (default 0.025).
	Threshold float32

	// PoolSize is the session pool size (default runtime.NumCPU()).
	PoolSize int

	// Tagset overrides the entity model's BIO labels. Index 0 must be the
	// outside tag.
	Tagset []string
}

// Model is the full Segmenter implementation: ONNX sentence-boundary
// detection plus optional named-entity tagging. It is safe for concurrent
// use.
type Model struct {
	tk        *tokenizer.Tokenizer
	boundary  *inference.Pool
	entities  *inference.Pool
	threshold float32
	tagset    []string
}

// NewModel creates an ONNX-backed segmenter from the given model files.
func NewModel(cfg ModelConfig) (*Model, error) {
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.025
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = runtime.NumCPU()
	}
	if len(cfg.Tagset) == 0 {
		cfg.Tagset = defaultTagset
	}

	if _, err := os.Stat(cfg.BoundaryModel); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.BoundaryModel)
		}
		return nil, fmt.Errorf("checking boundary model: %w", err)
	}

	tk, err := pretrained.FromFile(cfg.TokenizerFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenizerFailed, err)
	}

	boundary, err := inference.NewPool(cfg.BoundaryModel, cfg.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	m := &Model{
		tk:        tk,
		boundary:  boundary,
		threshold: cfg.Threshold,
		tagset:    cfg.Tagset,
	}

	if cfg.EntityModel != "" {
		pool, err := inference.NewPool(cfg.EntityModel, cfg.PoolSize)
		if err != nil {
			_ = boundary.Close()
			return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
		}
		m.entities = pool
	}

	return m, nil
}

// token pairs a vocabulary ID with its rune span in the source text.
type token struct {
	id         int64
	start, end int
}

// Sentences implements Segmenter.
func (m *Model) Sentences(ctx context.Context, text string) ([]Sentence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	tokens, err := m.encode(text)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	runes := []rune(text)

	logits, err := m.boundaryLogits(ctx, tokens)
	if err != nil {
		return nil, err
	}

	// Token end offsets where the boundary probability clears the threshold.
	var boundaries []int
	for i, logit := range logits {
		if sigmoid(logit) > m.threshold {
			boundaries = append(boundaries, tokens[i].end)
		}
	}

	sentences := splitAt(runes, boundaries)
	if len(sentences) == 0 {
		return nil, nil
	}

	if m.entities != nil {
		spans, err := m.entitySpans(ctx, tokens, runes)
		if err != nil {
			return nil, err
		}
		attachEntities(sentences, spans)
	}

	out := make([]Sentence, len(sentences))
	for i, s := range sentences {
		out[i] = s.Sentence
	}
	return out, nil
}

// Close releases all resources.
func (m *Model) Close() error {
	var errs []error
	if m.boundary != nil {
		if err := m.boundary.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.entities != nil {
		if err := m.entities.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// encode tokenizes text, keeping rune offsets for mapping logits back to
// source positions.
func (m *Model) encode(text string) ([]token, error) {
	en, err := m.tk.EncodeSingle(text)
	if err != nil {
		return nil, fmt.Errorf("encoding text: %w", err)
	}

	tokens := make([]token, 0, len(en.Ids))
	for i, id := range en.Ids {
		if i >= len(en.Offsets) || len(en.Offsets[i]) < 2 {
			continue
		}
		tokens = append(tokens, token{
			id:    int64(id),
			start: en.Offsets[i][0],
			end:   en.Offsets[i][1],
		})
	}
	return tokens, nil
}

// boundaryLogits returns per-token boundary logits, processing long inputs
// in overlapping chunks with logit averaging.
func (m *Model) boundaryLogits(ctx context.Context, tokens []token) ([]float32, error) {
	session, err := m.boundary.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer m.boundary.Release(session)

	if len(tokens) <= maxSeqLen {
		ids, mask := tensorInputs(tokens)
		return session.Infer(ctx, ids, mask)
	}

	logits := make([]float32, len(tokens))
	counts := make([]int, len(tokens)) // times each position was processed

	stride := maxSeqLen - chunkOverlap
	for start := 0; start < len(tokens); start += stride {
		end := start + maxSeqLen
		if end > len(tokens) {
			end = len(tokens)
		}

		ids, mask := tensorInputs(tokens[start:end])
		chunkLogits, err := session.Infer(ctx, ids, mask)
		if err != nil {
			return nil, err
		}

		// Accumulate for averaging in overlap regions
		for i, logit := range chunkLogits {
			logits[start+i] += logit
			counts[start+i]++
		}

		if end >= len(tokens) {
			break
		}
	}

	for i := range logits {
		if counts[i] > 1 {
			logits[i] /= float32(counts[i])
		}
	}

	return logits, nil
}

// entitySpan is an entity with its rune span in the full text.
type entitySpan struct {
	Entity
	start, end int
}

// entitySpans runs the NER model and decodes BIO tags into spans. Long
// inputs are processed in plain chunks; tag decisions do not benefit from
// overlap averaging the way boundary logits do.
func (m *Model) entitySpans(ctx context.Context, tokens []token, runes []rune) ([]entitySpan, error) {
	session, err := m.entities.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer m.entities.Release(session)

	tags := make([]string, 0, len(tokens))
	for start := 0; start < len(tokens); start += maxSeqLen {
		end := start + maxSeqLen
		if end > len(tokens) {
			end = len(tokens)
		}

		ids, mask := tensorInputs(tokens[start:end])
		logits, err := session.InferTags(ctx, ids, mask)
		if err != nil {
			return nil, err
		}
		for _, tokenLogits := range logits {
			tags = append(tags, m.tagFor(tokenLogits))
		}
	}

	return decodeBIO(tokens, tags, runes), nil
}

// tagFor returns the tagset entry with the highest logit.
func (m *Model) tagFor(logits []float32) string {
	best := 0
	for i := 1; i < len(logits) && i < len(m.tagset); i++ {
		if logits[i] > logits[best] {
			best = i
		}
	}
	if best >= len(m.tagset) {
		return m.tagset[0]
	}
	return m.tagset[best]
}

// decodeBIO merges contiguous B-/I- tagged tokens of the same type into
// entity spans.
func decodeBIO(tokens []token, tags []string, runes []rune) []entitySpan {
	var spans []entitySpan
	var open *entitySpan

	flush := func() {
		if open != nil {
			open.Text = string(runes[open.start:open.end])
			spans = append(spans, *open)
			open = nil
		}
	}

	for i, tag := range tags {
		if i >= len(tokens) {
			break
		}
		kind, label, ok := strings.Cut(tag, "-")
		if !ok {
			flush()
			continue
		}

		switch kind {
		case "B":
			flush()
			open = &entitySpan{
				Entity: Entity{Label: Label(label)},
				start:  tokens[i].start,
				end:    tokens[i].end,
			}
		case "I":
			if open != nil && open.Label == Label(label) {
				open.end = tokens[i].end
			} else {
				// Dangling I- tag; treat as a span start.
				flush()
				open = &entitySpan{
					Entity: Entity{Label: Label(label)},
					start:  tokens[i].start,
					end:    tokens[i].end,
				}
			}
		default:
			flush()
		}
	}
	flush()

	return spans
}

// boundedSentence tracks a sentence's rune span for entity assignment.
type boundedSentence struct {
	Sentence
	start, end int
}

// splitAt slices runes at ascending boundary offsets, trimming whitespace
// but keeping the original spans.
func splitAt(runes []rune, boundaries []int) []boundedSentence {
	var sentences []boundedSentence
	appendSpan := func(start, end int) {
		text := strings.TrimSpace(string(runes[start:end]))
		if text != "" {
			sentences = append(sentences, boundedSentence{
				Sentence: Sentence{Text: text},
				start:    start,
				end:      end,
			})
		}
	}

	start := 0
	for _, end := range boundaries {
		if end > start && end <= len(runes) {
			appendSpan(start, end)
			start = end
		}
	}
	if start < len(runes) {
		appendSpan(start, len(runes))
	}
	return sentences
}

// attachEntities assigns each entity span to the sentence containing its
// start offset.
func attachEntities(sentences []boundedSentence, spans []entitySpan) {
	for _, span := range spans {
		for i := range sentences {
			if span.start >= sentences[i].start && span.start < sentences[i].end {
				sentences[i].Entities = append(sentences[i].Entities, span.Entity)
				break
			}
		}
	}
}

// tensorInputs builds the model input slices for a token window.
func tensorInputs(tokens []token) (inputIDs, attentionMask []int64) {
	inputIDs = make([]int64, len(tokens))
	attentionMask = make([]int64, len(tokens))
	for i, t := range tokens {
		inputIDs[i] = t.id
		attentionMask[i] = 1
	}
	return inputIDs, attentionMask
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}
