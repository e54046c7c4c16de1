package abstract

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNoProcessor indicates no registered processor accepted the document.
	ErrNoProcessor = errors.New("abstract: no suitable processor for document")

	// ErrFullTextUnsupported indicates the document looks like a full-text
	// article, which this package deliberately does not handle.
	ErrFullTextUnsupported = errors.New("abstract: full-text processing not supported")
)
