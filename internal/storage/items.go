package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ozytarget/newsdesk/internal/pipeline"
)

const (
	secondsPerHour = 3600.0
	secondsPerDay  = 86400.0
)

var itemColumns = []string{
	"item_hash", "ts", "source", "domain", "title", "summary", "link",
	"score", "kw_hits", "noise_hits",
}

// Item is a scored item as persisted.
type Item struct {
	Hash        string  `json:"item_hash"`
	TS          float64 `json:"ts"`
	Source      string  `json:"source"`
	Domain      string  `json:"domain"`
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Link        string  `json:"link"`
	Score       int     `json:"score"`
	KeywordHits int     `json:"kw_hits"`
	NoiseHits   int     `json:"noise_hits"`
}

// InsertItems persists a batch of scored items, skipping any whose content
// hash already exists. Duplicates are expected under overlapping fetch
// windows and concurrent writers; they are not errors. Returns the number
// of rows actually inserted.
func (s *Store) InsertItems(ctx context.Context, items []pipeline.ScoredItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	q := s.builder.Insert("news_items").Columns(itemColumns...)

	for _, item := range items {
		q = q.Values(
			ItemHash(item.Title, item.Link),
			item.PublishedAt,
			item.Source,
			item.Domain,
			item.Title,
			item.Summary,
			item.Link,
			item.Score,
			item.KeywordHits,
			item.NoiseHits,
		)
	}

	res, err := q.Suffix("ON CONFLICT (item_hash) DO NOTHING").RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert items: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert items rows affected: %w", err)
	}

	return inserted, nil
}

// ItemsSince returns items from the last N hours, newest first.
func (s *Store) ItemsSince(ctx context.Context, hours, limit int) ([]Item, error) {
	since := float64(time.Now().Unix()) - float64(hours)*secondsPerHour

	rows, err := s.builder.
		Select(itemColumns...).
		From("news_items").
		Where(sq.GtOrEq{"ts": since}).
		OrderBy("ts DESC").
		Limit(uint64(limit)).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items since: %w", err)
	}
	defer rows.Close()

	var items []Item

	for rows.Next() {
		var it Item

		if err := rows.Scan(
			&it.Hash, &it.TS, &it.Source, &it.Domain, &it.Title,
			&it.Summary, &it.Link, &it.Score, &it.KeywordHits, &it.NoiseHits,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

// PruneOlderThan deletes items whose stored timestamp is older than the
// retention window. Invoked after every insert batch.
func (s *Store) PruneOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := float64(time.Now().Unix()) - float64(retentionDays)*secondsPerDay

	res, err := s.builder.
		Delete("news_items").
		Where(sq.Lt{"ts": cutoff}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("prune items: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune items rows affected: %w", err)
	}

	if pruned > 0 {
		s.logger.Debug().Int64("pruned", pruned).Msg("retention pruning removed items")
	}

	return pruned, nil
}
