package pipeline

import (
	"regexp"
	"strings"
	"time"

	"github.com/ozytarget/newsdesk/internal/feed"
)

const minTitleLen = 5

// Candidate is a raw item that passed the relevance filter, annotated with
// its keyword counts for the scorer.
type Candidate struct {
	feed.RawItem

	KeywordHits int
	NoiseHits   int
}

// Filter rejects items by age, hard-blocked topics, and keyword density.
type Filter struct {
	minKeywordHits int
	maxNoiseHits   int
	maxAge         time.Duration

	hardBlock     *regexp.Regexp
	institutional termSet
	noise         termSet

	now func() time.Time
}

// NewFilter builds a Filter from the injected heuristic tables.
func NewFilter(h Heuristics, minKeywordHits, maxNoiseHits, maxAgeHours int) *Filter {
	return &Filter{
		minKeywordHits: minKeywordHits,
		maxNoiseHits:   maxNoiseHits,
		maxAge:         time.Duration(maxAgeHours) * time.Hour,
		hardBlock:      hardBlockPattern(h.HardBlock),
		institutional:  newTermSet(h.Institutional),
		noise:          newTermSet(h.Noise),
		now:            time.Now,
	}
}

// Apply returns the candidates surviving all gates. Rejections are silent:
// malformed or stale input is an expected condition, not an error.
func (f *Filter) Apply(items []feed.RawItem) []Candidate {
	out := make([]Candidate, 0, len(items))
	now := f.now()

	for _, item := range items {
		if c, ok := f.check(item, now); ok {
			out = append(out, c)
		}
	}

	return out
}

func (f *Filter) check(item feed.RawItem, now time.Time) (Candidate, bool) {
	if len(strings.TrimSpace(item.Title)) < minTitleLen {
		return Candidate{}, false
	}

	// Zero means the published date was missing or unparseable.
	if item.PublishedAt <= 0 {
		return Candidate{}, false
	}

	if float64(now.Unix())-item.PublishedAt > f.maxAge.Seconds() {
		return Candidate{}, false
	}

	blob := strings.TrimSpace(strings.TrimSpace(item.Title) + "\n" + strings.TrimSpace(item.Summary))
	folded := foldCaser.String(blob)

	// Hard block precedes the density gate and scoring.
	if f.hardBlock != nil && f.hardBlock.MatchString(folded) {
		return Candidate{}, false
	}

	kwHits := f.institutional.countHits(folded)
	noiseHits := f.noise.countHits(folded)

	if kwHits < f.minKeywordHits || noiseHits > f.maxNoiseHits {
		return Candidate{}, false
	}

	return Candidate{RawItem: item, KeywordHits: kwHits, NoiseHits: noiseHits}, true
}
