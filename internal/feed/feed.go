// Package feed fetches raw headline candidates from Google News RSS.
//
// The fetcher is a collaborator of the scoring pipeline, not part of it:
// it produces RawItem values and makes no relevance decisions beyond the
// query it sends upstream.
package feed

import (
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// RawItem is one headline as it arrives from a feed, before any
// normalization or scoring.
type RawItem struct {
	Source        string  `json:"source"`
	Title         string  `json:"title"`
	Link          string  `json:"link"`
	PublishedText string  `json:"published_text"`
	Summary       string  `json:"summary"`
	PublishedAt   float64 `json:"published_at"` // epoch seconds, 0 when unparseable
}

// ParseTime converts a feed timestamp string to epoch seconds.
// Returns 0 for empty or unparseable values; the relevance filter drops
// those items later.
func ParseTime(value string) float64 {
	if value == "" {
		return 0
	}

	t, err := dateparse.ParseAny(value)
	if err != nil {
		return 0
	}

	return float64(t.UTC().Unix())
}

// TimeAgo renders the age of an epoch timestamp as a compact s/m/h string.
func TimeAgo(ts float64, now time.Time) string {
	diff := now.Unix() - int64(ts)
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < 60:
		return strconv.FormatInt(diff, 10) + "s"
	case diff < 3600:
		return strconv.FormatInt(diff/60, 10) + "m"
	default:
		return strconv.FormatInt(diff/3600, 10) + "h"
	}
}
