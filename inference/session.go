// Package inference provides ONNX Runtime integration for the token
// classification models behind sentence segmentation and entity tagging.
package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Session wraps an ONNX Runtime session for a single token-classification
// model. Both the boundary model and the entity tagger share the
// input_ids/attention_mask -> logits signature.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string) (*Session, error) {
	// Check file exists
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }() // Cleanup error doesn't affect success

	inputNames := []string{"input_ids", "attention_mask"}
	outputNames := []string{"logits"}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		inputNames,
		outputNames,
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// run executes the model and returns the flattened output logits.
func (s *Session) run(ctx context.Context, inputIDs, attentionMask []int64) ([]float32, error) {
	// Check context before expensive operation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("session is closed")
	}

	batchSize := int64(1)
	seqLen := int64(len(inputIDs))

	inputIDsTensor, err := ort.NewTensor(
		ort.NewShape(batchSize, seqLen),
		inputIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("creating input_ids tensor: %w", err)
	}
	defer func() { _ = inputIDsTensor.Destroy() }()

	attentionMaskTensor, err := ort.NewTensor(
		ort.NewShape(batchSize, seqLen),
		attentionMask,
	)
	if err != nil {
		return nil, fmt.Errorf("creating attention_mask tensor: %w", err)
	}
	defer func() { _ = attentionMaskTensor.Destroy() }()

	inputs := []ort.Value{inputIDsTensor, attentionMaskTensor}

	// Output slice - nil entries will be allocated by Run
	outputs := []ort.Value{nil}

	err = s.session.Run(inputs, outputs)
	if err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}

	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	outputData := logitsTensor.GetData()
	logits := make([]float32, len(outputData))
	copy(logits, outputData)

	return logits, nil
}

// Infer runs a boundary model on tokenized input, returning one logit per
// token.
func (s *Session) Infer(ctx context.Context, inputIDs, attentionMask []int64) ([]float32, error) {
	raw, err := s.run(ctx, inputIDs, attentionMask)
	if err != nil {
		return nil, err
	}

	seqLen := len(inputIDs)
	if len(raw) < seqLen {
		return nil, fmt.Errorf("output too short: %d logits for %d tokens", len(raw), seqLen)
	}
	return raw[:seqLen], nil
}

// InferTags runs a tagging model, returning per-token class logits. The
// class count is derived from the output length, so the same session type
// serves models with any label inventory.
func (s *Session) InferTags(ctx context.Context, inputIDs, attentionMask []int64) ([][]float32, error) {
	raw, err := s.run(ctx, inputIDs, attentionMask)
	if err != nil {
		return nil, err
	}

	seqLen := len(inputIDs)
	if seqLen == 0 || len(raw)%seqLen != 0 {
		return nil, fmt.Errorf("output length %d not divisible by sequence length %d", len(raw), seqLen)
	}
	classes := len(raw) / seqLen

	tags := make([][]float32, seqLen)
	for i := range tags {
		tags[i] = raw[i*classes : (i+1)*classes]
	}
	return tags, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
