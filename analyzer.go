package abstract

import (
	"regexp"
	"sort"
	"strings"
)

// SectionLabel identifies a recognized abstract section type.
type SectionLabel string

// The closed set of section labels. Unknown marks unlabeled leading text.
const (
	LabelBackground   SectionLabel = "background"
	LabelPurpose      SectionLabel = "purpose"
	LabelObjective    SectionLabel = "objective"
	LabelMethods      SectionLabel = "methods"
	LabelApproach     SectionLabel = "approach"
	LabelProcedure    SectionLabel = "procedure"
	LabelResults      SectionLabel = "results"
	LabelOutcomes     SectionLabel = "outcomes"
	LabelConclusions  SectionLabel = "conclusions"
	LabelSignificance SectionLabel = "significance"
	LabelUnknown      SectionLabel = "unknown"
)

// HeaderMatch is one detected section header.
type HeaderMatch struct {
	Label SectionLabel
	Start int    // byte offset of the header in the original text
	Text  string // matched header text, including the trailing : or .
}

// Section is a region of a structured abstract.
type Section struct {
	Label   SectionLabel
	Content string // header stripped, whitespace trimmed
	Start   int
	End     int
}

// Analysis is the full structural analysis of one abstract. It is
// recomputed on every call; nothing is cached.
type Analysis struct {
	Length                int
	WordCount             int
	SentenceCount         int
	HasStructuredSections bool
	Headers               []HeaderMatch
	Sections              []Section
	TechnicalTerms        []string // deduplicated, sorted
	Measurements          []string // in scan order, duplicates kept
}

// labelPatterns maps each label to its header keyword alternatives. A
// slice rather than a map: match collection order must be reproducible so
// that offset ties sort deterministically.
var labelPatterns = []struct {
	label    SectionLabel
	patterns []string
}{
	{LabelBackground, []string{`\bBACKGROUND\b`, `\bINTRODUCTION\b`}},
	{LabelPurpose, []string{`\bPURPOSE\b`, `\bAIM\b`, `\bAIMS\b`}},
	{LabelObjective, []string{`\bOBJECTIVE\b`, `\bOBJECTIVES\b`}},
	{LabelMethods, []string{`\bMETHODS\b`, `\bMETHODOLOGY\b`, `\bMATERIALS AND METHODS\b`}},
	{LabelApproach, []string{`\bAPPROACH\b`}},
	{LabelProcedure, []string{`\bPROCEDURE\b`, `\bPROCEDURES\b`}},
	{LabelResults, []string{`\bRESULTS\b`, `\bFINDINGS\b`, `\bMAIN RESULTS\b`}},
	{LabelOutcomes, []string{`\bOUTCOMES\b`}},
	{LabelConclusions, []string{`\bCONCLUSION\b`, `\bCONCLUSIONS\b`}},
	{LabelSignificance, []string{`\bSIGNIFICANCE\b`, `\bIMPLICATIONS\b`}},
}

// compiled header patterns, in labelPatterns order. Each keyword must be
// immediately followed by a colon or period to count as a header.
var headerPatterns = func() []struct {
	label SectionLabel
	re    *regexp.Regexp
} {
	var out []struct {
		label SectionLabel
		re    *regexp.Regexp
	}
	for _, lp := range labelPatterns {
		for _, p := range lp.patterns {
			out = append(out, struct {
				label SectionLabel
				re    *regexp.Regexp
			}{lp.label, regexp.MustCompile(`(?i)` + p + `\s*[:.]`)})
		}
	}
	return out
}()

var (
	abbreviationRe = regexp.MustCompile(`\(([A-Z]{2,})\)`)
	unitRe         = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*([A-Za-z]+)`)
	sentenceRunRe  = regexp.MustCompile(`[.!?]+`)

	measurementRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+(?:\.\d+)?\s*[%±]`),              // percentages and ± values
		regexp.MustCompile(`\b\d+(?:\.\d+)?\s*-\s*\d+(?:\.\d+)?`), // ranges
		regexp.MustCompile(`\b\d+(?:\.\d+)?\s*[A-Za-z]+(?:/[A-Za-z]+)*`), // numbers with units
		regexp.MustCompile(`[<>=≤≥]\s*\d+(?:\.\d+)?`),             // comparison operators
	}
)

// Analyzer inspects abstract text for structure and notable content. The
// zero value is ready to use; Analyze is a pure function of its input.
type Analyzer struct{}

// FindHeaders returns all section header matches, sorted by start offset.
// Ties keep pattern-table order.
func (Analyzer) FindHeaders(text string) []HeaderMatch {
	var headers []HeaderMatch
	for _, hp := range headerPatterns {
		for _, loc := range hp.re.FindAllStringIndex(text, -1) {
			headers = append(headers, HeaderMatch{
				Label: hp.label,
				Start: loc[0],
				Text:  text[loc[0]:loc[1]],
			})
		}
	}

	sort.SliceStable(headers, func(i, j int) bool {
		return headers[i].Start < headers[j].Start
	})
	return headers
}

// Analyze computes the full structural analysis for text.
func (a Analyzer) Analyze(text string) Analysis {
	headers := a.FindHeaders(text)

	return Analysis{
		Length:                len(text),
		WordCount:             len(strings.Fields(text)),
		SentenceCount:         len(sentenceRunRe.FindAllString(text, -1)),
		HasStructuredSections: len(headers) > 0,
		Headers:               headers,
		Sections:              splitSections(text, headers),
		TechnicalTerms:        findTechnicalTerms(text),
		Measurements:          findMeasurements(text),
	}
}

// splitSections partitions text into sections at the given sorted header
// matches. Text before the first header becomes an unknown-labeled
// introductory section. Zero headers means zero sections; the caller
// routes such text to the unstructured path.
func splitSections(text string, headers []HeaderMatch) []Section {
	if len(headers) == 0 {
		return nil
	}

	var sections []Section

	if headers[0].Start > 0 {
		sections = append(sections, Section{
			Label:   LabelUnknown,
			Content: strings.TrimSpace(text[:headers[0].Start]),
			Start:   0,
			End:     headers[0].Start,
		})
	}

	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1].Start
		}

		contentStart := h.Start + len(h.Text)
		if contentStart > end {
			contentStart = end
		}

		sections = append(sections, Section{
			Label:   h.Label,
			Content: strings.TrimSpace(text[contentStart:end]),
			Start:   h.Start,
			End:     end,
		})
	}

	return sections
}

// findTechnicalTerms collects parenthesized abbreviations and unit tokens
// trailing numbers, deduplicated and sorted.
func findTechnicalTerms(text string) []string {
	seen := make(map[string]struct{})

	for _, m := range abbreviationRe.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = struct{}{}
	}
	for _, m := range unitRe.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = struct{}{}
	}

	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// findMeasurements concatenates matches of the four measurement scans in
// scan order. Duplicates are intentionally kept.
func findMeasurements(text string) []string {
	var measurements []string
	for _, re := range measurementRes {
		measurements = append(measurements, re.FindAllString(text, -1)...)
	}
	return measurements
}
