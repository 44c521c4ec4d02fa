package pipeline

import (
	"strings"
	"testing"

	"github.com/ozytarget/newsdesk/internal/feed"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name       string
		items      []feed.RawItem
		wantTitles []string
	}{
		{
			name: "same link different titles collapse to first",
			items: []feed.RawItem{
				{Title: "Fed holds rates", Link: "https://example.com/a"},
				{Title: "Fed keeps rates unchanged", Link: "https://example.com/a"},
			},
			wantTitles: []string{"Fed holds rates"},
		},
		{
			name: "no link identical normalized titles collapse",
			items: []feed.RawItem{
				{Title: "  Treasury   Yields Rise "},
				{Title: "treasury yields rise"},
			},
			wantTitles: []string{"  Treasury   Yields Rise "},
		},
		{
			name: "different links survive",
			items: []feed.RawItem{
				{Title: "Same headline", Link: "https://example.com/a"},
				{Title: "Same headline", Link: "https://example.com/b"},
			},
			wantTitles: []string{"Same headline", "Same headline"},
		},
		{
			name: "link takes precedence over title key",
			items: []feed.RawItem{
				{Title: "identical", Link: "https://example.com/a"},
				{Title: "identical"},
			},
			wantTitles: []string{"identical", "identical"},
		},
		{
			name:       "empty input",
			items:      nil,
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.items)
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("Dedupe() returned %d items, want %d", len(got), len(tt.wantTitles))
			}

			for i, item := range got {
				if item.Title != tt.wantTitles[i] {
					t.Errorf("Dedupe()[%d].Title = %q, want %q", i, item.Title, tt.wantTitles[i])
				}
			}
		})
	}
}

func TestDedupeTitleKeyTruncation(t *testing.T) {
	long := strings.Repeat("a", 300)
	items := []feed.RawItem{
		{Title: long + "-first"},
		{Title: long + "-second"},
	}

	got := Dedupe(items)
	if len(got) != 1 {
		t.Fatalf("titles identical within 240 chars should collapse, got %d items", len(got))
	}
}
