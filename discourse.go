package abstract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jamesainslie/go-abstract/nlp"
)

// discourseMarkers lists rhetorical transition cues by category. The
// categories are documentation only; matching uses one flat set.
var discourseMarkers = map[string][]string{
	"contrast":   {"however", "nevertheless", "nonetheless", "conversely", "in contrast", "on the other hand"},
	"addition":   {"additionally", "furthermore", "moreover", "also", "in addition", "besides"},
	"result":     {"consequently", "therefore", "thus", "as a result", "hence", "accordingly"},
	"sequence":   {"first", "second", "third", "next", "then", "finally", "subsequently"},
	"emphasis":   {"importantly", "notably", "significantly", "remarkably"},
	"conclusion": {"in conclusion", "in summary", "to conclude", "overall", "in brief"},
}

// topicTransitions match sentence openers that introduce a new subject.
var topicTransitions = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(We|Our|The study|This study|The present study)`),
	regexp.MustCompile(`(?i)^(The \w+ (was|were|showed|demonstrated|indicated))`),
	regexp.MustCompile(`(?i)^(To |In order to)`),
	regexp.MustCompile(`(?i)^(Analysis|Investigation|Evaluation) (showed|revealed|demonstrated)`),
}

// resultsIndicators match results/statistics language.
var resultsIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(showed|demonstrated|revealed|found|indicated|observed)\b`),
	regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?%|\d+±\d+|\d+ out of \d+)\b`),
	regexp.MustCompile(`(?i)\b(significant|significantly|correlation|p\s*[<>=])\b`),
	regexp.MustCompile(`(?i)\b(average|mean|median|range|between.*and)\b`),
}

// entityLabels restricts entity-shift scoring to coarse real-world types.
var entityLabels = map[nlp.Label]bool{
	nlp.LabelOrganization: true,
	nlp.LabelProduct:      true,
	nlp.LabelLocation:     true,
	nlp.LabelPerson:       true,
}

// DiscourseGrouper groups segmented sentences into paragraphs using
// discourse markers, topic transitions, entity shifts and a
// results-section heuristic. Construct once and reuse; it holds only
// read-only configuration.
type DiscourseGrouper struct {
	markers    []string // flattened, sorted
	maxGroup   int
	shiftRatio float64
}

// NewDiscourseGrouper builds a grouper. maxGroup is the hard cap on group
// size before a forced break (default 4); shiftRatio is the entity-overlap
// ratio below which an entity shift fires (default 0.3).
func NewDiscourseGrouper(maxGroup int, shiftRatio float64) *DiscourseGrouper {
	if maxGroup <= 0 {
		maxGroup = 4
	}
	if shiftRatio <= 0 {
		shiftRatio = 0.3
	}

	// Flatten the categorized marker lists once; a sorted slice keeps
	// iteration deterministic.
	var markers []string
	for _, ms := range discourseMarkers {
		markers = append(markers, ms...)
	}
	sort.Strings(markers)

	return &DiscourseGrouper{
		markers:    markers,
		maxGroup:   maxGroup,
		shiftRatio: shiftRatio,
	}
}

// Group partitions sentences into ordered paragraph groups. Every input
// sentence appears in exactly one group, in source order. An empty input
// yields no groups.
func (g *DiscourseGrouper) Group(sentences []nlp.Sentence) [][]nlp.Sentence {
	if len(sentences) == 0 {
		return nil
	}
	if len(sentences) <= 4 {
		return [][]nlp.Sentence{sentences}
	}

	var groups [][]nlp.Sentence
	var current []nlp.Sentence

	for _, sent := range sentences {
		hasMarker := g.startsWithMarker(sent.Text)
		isTransition := isTopicTransition(sent.Text)

		entityShift := false
		if len(current) > 0 {
			entityShift = g.hasEntityShift(current[len(current)-1], sent)
		}

		isResults := isResultsIndicator(sent.Text)

		shouldBreak := (hasMarker && len(current) > 0) ||
			(isTransition && len(current) >= 2) ||
			(entityShift && len(current) >= 3) ||
			(isResults && len(current) > 0 && !isResultsIndicator(joinTexts(current))) ||
			len(current) >= g.maxGroup

		if shouldBreak {
			groups = append(groups, current)
			current = []nlp.Sentence{sent}
		} else {
			current = append(current, sent)
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return mergeShortGroups(groups)
}

// startsWithMarker reports whether the sentence opens with a discourse
// marker followed by a comma, space, period or semicolon. Matching is
// deliberately start-anchored; mid-sentence markers do not count.
func (g *DiscourseGrouper) startsWithMarker(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, marker := range g.markers {
		if !strings.HasPrefix(lower, marker) {
			continue
		}
		if len(sentence) <= len(marker) {
			continue
		}
		switch sentence[len(marker)] {
		case ',', ' ', '.', ';':
			return true
		}
	}
	return false
}

func isTopicTransition(sentence string) bool {
	for _, re := range topicTransitions {
		if re.MatchString(sentence) {
			return true
		}
	}
	return false
}

func isResultsIndicator(text string) bool {
	for _, re := range resultsIndicators {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// hasEntityShift compares the coarse entity sets of two adjacent
// sentences. It fires only when both sets are non-empty and their overlap
// ratio falls below the configured threshold; texts without recognized
// entities never trigger this break.
func (g *DiscourseGrouper) hasEntityShift(prev, curr nlp.Sentence) bool {
	prevSet := entitySet(prev)
	currSet := entitySet(curr)
	if len(prevSet) == 0 || len(currSet) == 0 {
		return false
	}

	overlap := 0
	union := len(prevSet)
	for e := range currSet {
		if prevSet[e] {
			overlap++
		} else {
			union++
		}
	}
	if union == 0 {
		return false
	}
	return float64(overlap)/float64(union) < g.shiftRatio
}

func entitySet(s nlp.Sentence) map[string]bool {
	var set map[string]bool
	for _, e := range s.Entities {
		if !entityLabels[e.Label] {
			continue
		}
		if set == nil {
			set = make(map[string]bool)
		}
		set[strings.ToLower(e.Text)] = true
	}
	return set
}

// mergeShortGroups absorbs interior one-sentence groups into their
// following group, in a single left-to-right pass. The final group may
// remain a singleton.
func mergeShortGroups(groups [][]nlp.Sentence) [][]nlp.Sentence {
	if len(groups) <= 1 {
		return groups
	}

	var merged [][]nlp.Sentence
	for i := 0; i < len(groups); {
		current := groups[i]
		if len(current) == 1 && i < len(groups)-1 {
			current = append(current, groups[i+1]...)
			i += 2
		} else {
			i++
		}
		merged = append(merged, current)
	}
	return merged
}

func joinTexts(sentences []nlp.Sentence) string {
	parts := make([]string, len(sentences))
	for i, s := range sentences {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}
