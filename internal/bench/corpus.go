// Package bench provides evaluation utilities for paragraph grouping.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/go-abstract/nlp"
)

// Header contains metadata parsed from an annotated abstract file header.
type Header struct {
	Source string
	Title  string
}

// ParseHeader extracts metadata from header comments. Returns the header,
// remaining text after the header, and any error.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	var bodyStart int
	var lineEnd int

	for scanner.Scan() {
		line := scanner.Text()
		lineEnd += len(line) + 1 // +1 for newline

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineEnd - len(line) - 1
			break
		}

		line = strings.TrimPrefix(line, "# ")
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	body := text[bodyStart:]
	body = strings.TrimSpace(body)

	return h, body, nil
}

// Abstract is one annotated abstract: the ground-truth paragraphs are
// blank-line separated in the source file.
type Abstract struct {
	ID        string // filename without extension
	Source    string
	Title     string
	RawText   string   // body with paragraph annotations removed
	Sentences []string // flattened sentence list
	Breaks    []int    // sentence indices where a ground-truth paragraph starts (first excluded)
}

// LoadAbstract loads and parses an annotated abstract file.
func LoadAbstract(path string) (*Abstract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	var sentences []string
	var breaks []int
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(sentences) > 0 {
			breaks = append(breaks, len(sentences))
		}
		sentences = append(sentences, nlp.SplitPunct(para)...)
	}

	return &Abstract{
		ID:        id,
		Source:    header.Source,
		Title:     header.Title,
		RawText:   strings.Join(sentences, " "),
		Sentences: sentences,
		Breaks:    breaks,
	}, nil
}

// LoadCorpus loads all .txt abstract files from a directory.
func LoadCorpus(dir string) ([]*Abstract, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var abstracts []*Abstract
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".txt" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		ab, err := LoadAbstract(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		abstracts = append(abstracts, ab)
	}

	return abstracts, nil
}
