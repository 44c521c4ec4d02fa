package pipeline

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ozytarget/newsdesk/internal/feed"
)

func TestPipelineProcess(t *testing.T) {
	logger := zerolog.Nop()
	f := newTestFilter(1, 0)
	p := New(f, NewScorer(DefaultHeuristics()), &logger)

	older := recentItem("Treasury auction tails as yields climb", "")
	older.Link = "https://example.com/auction"
	older.PublishedAt = float64(filterNow.Add(-2 * time.Hour).Unix())

	newer := recentItem("Fed holds rates, Powell signals restrictive stance", "")
	newer.Link = "https://example.com/fomc"

	irrelevant := recentItem("Local bakery opens second location", "")
	irrelevant.Link = "https://example.com/bakery"

	items := []feed.RawItem{
		older,
		newer,
		// Duplicate link of the first entry, must collapse.
		{
			Title:       "Treasury auction tails as yields climb",
			Link:        older.Link,
			PublishedAt: older.PublishedAt,
		},
		irrelevant,
	}

	got := p.Process(items)

	if len(got) != 2 {
		t.Fatalf("Process() returned %d items, want 2", len(got))
	}

	if got[0].PublishedAt < got[1].PublishedAt {
		t.Error("Process() output not sorted newest first")
	}

	for _, item := range got {
		if item.Domain == "" {
			t.Errorf("item %q missing extracted domain", item.Title)
		}
	}
}
