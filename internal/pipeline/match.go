package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// termSet matches a keyword table against folded text. Single-word terms
// match on word boundaries so fragments inside unrelated words don't count;
// multi-word and hyphenated terms use substring containment since a
// boundary regex is ambiguous across punctuation.
type termSet struct {
	substrings []string
	words      []*regexp.Regexp
}

func newTermSet(terms []string) termSet {
	var ts termSet

	for _, term := range terms {
		t := foldCaser.String(strings.TrimSpace(term))
		if t == "" {
			continue
		}

		if strings.ContainsAny(t, " -") {
			ts.substrings = append(ts.substrings, t)
			continue
		}

		ts.words = append(ts.words, regexp.MustCompile(`\b`+regexp.QuoteMeta(t)+`\b`))
	}

	return ts
}

// countHits counts how many terms of the set occur in the folded text.
// Each term contributes at most one hit.
func (ts termSet) countHits(folded string) int {
	hits := 0

	for _, sub := range ts.substrings {
		if strings.Contains(folded, sub) {
			hits++
		}
	}

	for _, re := range ts.words {
		if re.MatchString(folded) {
			hits++
		}
	}

	return hits
}

// hardBlockPattern compiles the unconditional-drop terms into one
// whole-word alternation.
func hardBlockPattern(terms []string) *regexp.Regexp {
	if len(terms) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		quoted = append(quoted, regexp.QuoteMeta(foldCaser.String(strings.TrimSpace(t))))
	}

	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}
