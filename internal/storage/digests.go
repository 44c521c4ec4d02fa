package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// HourBucketFormat keys digests by UTC hour, e.g. "2026-08-31T14".
const HourBucketFormat = "2006-01-02T15"

// Digest is one stored digest record. Content is kept as raw JSON here;
// the digest package owns the schema.
type Digest struct {
	TS          float64         `json:"ts"`
	WindowHours int             `json:"window_hours"`
	HourBucket  string          `json:"digest_hour"`
	Content     json.RawMessage `json:"content"`
}

// HourBucket returns the UTC hour bucket string for a point in time.
func HourBucket(t time.Time) string {
	return t.UTC().Format(HourBucketFormat)
}

// LatestDigest returns the most recent digest, or nil when none exists.
func (s *Store) LatestDigest(ctx context.Context) (*Digest, error) {
	row := s.builder.
		Select("ts", "window_hours", "digest_hour", "content_json").
		From("ai_digests").
		OrderBy("ts DESC").
		Limit(1).
		RunWith(s.db).
		QueryRowContext(ctx)

	var (
		d       Digest
		content string
	)

	if err := row.Scan(&d.TS, &d.WindowHours, &d.HourBucket, &content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("query latest digest: %w", err)
	}

	d.Content = json.RawMessage(content)

	return &d, nil
}

// InsertDigestIfAbsent stores a digest keyed by its UTC hour bucket.
// At most one digest exists per bucket; a second writer's insert is a
// no-op. Returns true when this call created the row.
func (s *Store) InsertDigestIfAbsent(ctx context.Context, d Digest) (bool, error) {
	res, err := s.builder.
		Insert("ai_digests").
		Columns("ts", "window_hours", "digest_hour", "content_json").
		Values(d.TS, d.WindowHours, d.HourBucket, string(d.Content)).
		Suffix("ON CONFLICT (digest_hour) DO NOTHING").
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("insert digest: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert digest rows affected: %w", err)
	}

	return inserted > 0, nil
}
