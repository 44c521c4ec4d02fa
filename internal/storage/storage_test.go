package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozytarget/newsdesk/internal/config"
	"github.com/ozytarget/newsdesk/internal/feed"
	"github.com/ozytarget/newsdesk/internal/pipeline"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := zerolog.Nop()

	store, err := Open(context.Background(), config.BackendSQLite, ":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))

	return store
}

func scored(title, link string, ageHours int, score int) pipeline.ScoredItem {
	return pipeline.ScoredItem{
		RawItem: feed.RawItem{
			Source:      "news",
			Title:       title,
			Link:        link,
			PublishedAt: float64(time.Now().Add(-time.Duration(ageHours) * time.Hour).Unix()),
		},
		Domain: "example.com",
		Score:  score,
	}
}

func TestInsertItemsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	batch := []pipeline.ScoredItem{scored("Fed holds rates", "https://example.com/a", 1, 40)}

	inserted, err := store.InsertItems(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	inserted, err = store.InsertItems(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted, "same title and link must not create a second row")

	items, err := store.ItemsSince(ctx, 24, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestInsertItemsEmptyBatch(t *testing.T) {
	store := newTestStore(t)

	inserted, err := store.InsertItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestItemsSinceOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertItems(ctx, []pipeline.ScoredItem{
		scored("oldest", "https://example.com/1", 10, 10),
		scored("middle", "https://example.com/2", 5, 20),
		scored("newest", "https://example.com/3", 1, 30),
	})
	require.NoError(t, err)

	items, err := store.ItemsSince(ctx, 24, 10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "newest", items[0].Title)
	assert.Equal(t, "oldest", items[2].Title)

	limited, err := store.ItemsSince(ctx, 24, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "newest", limited[0].Title)
}

func TestItemsSinceWindow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertItems(ctx, []pipeline.ScoredItem{
		scored("inside window", "https://example.com/1", 2, 10),
		scored("outside window", "https://example.com/2", 30, 10),
	})
	require.NoError(t, err)

	items, err := store.ItemsSince(ctx, 24, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "inside window", items[0].Title)
}

func TestPruneOlderThan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertItems(ctx, []pipeline.ScoredItem{
		scored("kept", "https://example.com/1", 29*24, 10),
		scored("pruned", "https://example.com/2", 31*24, 10),
	})
	require.NoError(t, err)

	pruned, err := store.PruneOlderThan(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	items, err := store.ItemsSince(ctx, 40*24, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].Title)
}

func TestDigestRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	latest, err := store.LatestDigest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "empty table yields nil, not an error")

	now := time.Now().UTC()
	d := Digest{
		TS:          float64(now.Unix()),
		WindowHours: 24,
		HourBucket:  HourBucket(now),
		Content:     json.RawMessage(`{"caption":"first"}`),
	}

	won, err := store.InsertDigestIfAbsent(ctx, d)
	require.NoError(t, err)
	assert.True(t, won)

	d.Content = json.RawMessage(`{"caption":"second"}`)

	won, err = store.InsertDigestIfAbsent(ctx, d)
	require.NoError(t, err)
	assert.False(t, won, "one digest per hour bucket")

	latest, err = store.LatestDigest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, HourBucket(now), latest.HourBucket)
	assert.JSONEq(t, `{"caption":"first"}`, string(latest.Content))
}

func TestHourBucket(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	ts := time.Date(2026, 8, 31, 23, 40, 0, 0, est)

	if got := HourBucket(ts); got != "2026-09-01T04" {
		t.Errorf("HourBucket() = %q, want UTC bucket %q", got, "2026-09-01T04")
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	logger := zerolog.Nop()

	_, err := Open(context.Background(), "oracle", "dsn", &logger)
	require.Error(t, err)
}
