// Package pipeline turns raw headlines into scored items.
//
// The stages run in a fixed order on every refresh cycle:
//
//	dedupe -> relevance filter -> score -> sort newest first
//
// Dropped items are not errors; the pipeline's only output is the
// surviving scored set.
package pipeline

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/ozytarget/newsdesk/internal/feed"
)

type Pipeline struct {
	filter *Filter
	scorer *Scorer
	logger *zerolog.Logger
}

func New(filter *Filter, scorer *Scorer, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		filter: filter,
		scorer: scorer,
		logger: logger,
	}
}

// Process runs the full pipeline over one fetch batch.
func (p *Pipeline) Process(items []feed.RawItem) []ScoredItem {
	deduped := Dedupe(items)
	candidates := p.filter.Apply(deduped)

	scored := make([]ScoredItem, len(candidates))
	for i, c := range candidates {
		scored[i] = p.scorer.Score(c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PublishedAt > scored[j].PublishedAt
	})

	p.logger.Debug().
		Int("raw", len(items)).
		Int("deduped", len(deduped)).
		Int("survived", len(scored)).
		Msg("pipeline batch processed")

	return scored
}
