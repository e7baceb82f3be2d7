package resolve

import (
	"regexp"
	"strings"
)

// Extractor recovers candidate entity names from free text.
type Extractor interface {
	ExtractCandidateNames(text string) []string
}

// DefaultMinNameLength drops extracted phrases shorter than this many
// characters so initials and short acronyms are not mistaken for names.
const DefaultMinNameLength = 4

// properNounRE matches runs of capitalized words, optionally joined by the
// connectors of/the/for/and/in. Connectors never start or end a match, and
// a period ends the run so names never span sentences.
var properNounRE = regexp.MustCompile(
	`\b[A-Z][\w'&-]*(?:\s+(?:(?:of|the|for|and|in)\s+)*[A-Z][\w'&-]*)*`,
)

// ProperNounExtractor is the capitalized-phrase heuristic. It over-matches
// sentence-initial words and misses lowercase names.
type ProperNounExtractor struct {
	MinLength int
}

// ExtractCandidateNames returns distinct capitalized phrases in order of
// first appearance.
func (e ProperNounExtractor) ExtractCandidateNames(text string) []string {
	minLen := e.MinLength
	if minLen <= 0 {
		minLen = DefaultMinNameLength
	}

	var out []string
	seen := make(map[string]bool)
	for _, m := range properNounRE.FindAllString(text, -1) {
		phrase := strings.TrimRight(strings.Join(strings.Fields(m), " "), ".-'")
		if len([]rune(phrase)) < minLen || seen[phrase] {
			continue
		}
		seen[phrase] = true
		out = append(out, phrase)
	}
	return out
}

// ExtractCandidateNames runs the default extractor.
func ExtractCandidateNames(text string) []string {
	return ProperNounExtractor{}.ExtractCandidateNames(text)
}
