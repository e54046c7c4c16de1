package nlp

import (
	"context"
	"reflect"
	"testing"
)

func TestSplitPunct(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two sentences", "First one. Second one.", []string{"First one.", "Second one."}},
		{"mixed terminators", "One! Two? Three.", []string{"One!", "Two?", "Three."}},
		{"no terminator", "no terminal punctuation", []string{"no terminal punctuation"}},
		{"trailing space", "Trailing. ", []string{"Trailing."}},
		{"multiple spaces", "A.  B.", []string{"A.", "B."}},
		{"newline separator", "First.\nSecond.", []string{"First.", "Second."}},
		{"punctuation kept", "Sure? Yes.", []string{"Sure?", "Yes."}},
		{"abbreviation splits too", "e.g. example", []string{"e.g.", "example"}},
		{"empty", "", nil},
		{"whitespace only", "   \n ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitPunct(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitPunct(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRule_Sentences(t *testing.T) {
	r := NewRule()

	sentences, err := r.Sentences(context.Background(), "First one. Second one.")
	if err != nil {
		t.Fatalf("Sentences error: %v", err)
	}
	if len(sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(sentences))
	}
	if sentences[0].Text != "First one." || sentences[1].Text != "Second one." {
		t.Errorf("sentences = %+v", sentences)
	}
	for i, s := range sentences {
		if s.Entities != nil {
			t.Errorf("sentence %d has entities: %+v", i, s.Entities)
		}
	}
}

func TestRule_SentencesEmpty(t *testing.T) {
	r := NewRule()

	sentences, err := r.Sentences(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Sentences error: %v", err)
	}
	if sentences != nil {
		t.Errorf("expected nil, got %+v", sentences)
	}
}
