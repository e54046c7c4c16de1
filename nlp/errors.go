package nlp

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates a model file does not exist.
	ErrModelNotFound = errors.New("nlp: model file not found")

	// ErrInvalidModel indicates a model file exists but is malformed.
	ErrInvalidModel = errors.New("nlp: invalid model format")

	// ErrTokenizerFailed indicates tokenizer initialization failed.
	ErrTokenizerFailed = errors.New("nlp: tokenizer initialization failed")
)
