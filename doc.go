// Package abstract reformats dense scientific abstracts into readable,
// paragraph-structured text.
//
// # Quick Start
//
//	f := abstract.New(abstract.WithLineWidth(72))
//
//	out, err := f.Format(ctx, text, render.Markdown)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out)
//
// Abstracts with explicit section headers (BACKGROUND:, METHODS:, ...) are
// split into labeled sections. Unstructured abstracts are grouped into
// paragraphs heuristically, or — when a sentence segmentation capability
// is configured via WithSegmenter — using discourse markers, topic
// transitions and named-entity shifts.
//
// # NLP Capability
//
// The nlp subpackage provides two Segmenter implementations: nlp.Model,
// backed by ONNX token-classification models, and nlp.Rule, a punctuation
// splitter. Selection happens once at construction. Without a segmenter
// the engine falls back to its own lexical heuristics; a failing segmenter
// degrades output quality but never fails a Format call.
//
// # Thread Safety
//
// A Formatter holds only read-only configuration and is safe for
// concurrent use.
package abstract
