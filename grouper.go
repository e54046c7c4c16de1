package abstract

import (
	"regexp"

	"github.com/jamesainslie/go-abstract/nlp"
)

// topicStarters are sentence prefixes that tend to open a new topic in
// unstructured abstracts.
var topicStarters = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^We `),
	regexp.MustCompile(`(?i)^Our `),
	regexp.MustCompile(`(?i)^The study`),
	regexp.MustCompile(`(?i)^This study`),
	regexp.MustCompile(`(?i)^Results`),
	regexp.MustCompile(`(?i)^In conclusion`),
}

// GroupSentences splits text into sentences and groups them into
// paragraphs using lexical heuristics. It is the fallback path for
// unstructured abstracts when no NLP capability is configured.
//
// Grouping is a partition: every sentence lands in exactly one group, in
// source order.
func GroupSentences(text string) [][]string {
	sentences := nlp.SplitPunct(text)
	if len(sentences) == 0 {
		return nil
	}

	// Very short abstracts gain nothing from splitting.
	if len(sentences) <= 3 {
		return [][]string{sentences}
	}

	var groups [][]string
	var current []string

	for _, sentence := range sentences {
		if startsNewTopic(sentence) && len(current) > 0 {
			groups = append(groups, current)
			current = []string{sentence}
		} else {
			current = append(current, sentence)
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

func startsNewTopic(sentence string) bool {
	for _, re := range topicStarters {
		if re.MatchString(sentence) {
			return true
		}
	}
	return false
}
