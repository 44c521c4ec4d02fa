package digest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozytarget/newsdesk/internal/storage"
)

func promptItems(n int) []storage.Item {
	items := make([]storage.Item, 0, n)

	for i := 0; i < n; i++ {
		items = append(items, storage.Item{
			Title:  fmt.Sprintf("Headline %d", i+1),
			Domain: "reuters.com",
			Link:   fmt.Sprintf("https://reuters.com/%d", i+1),
			Score:  50 - i,
		})
	}

	return items
}

func TestBuildPromptStructure(t *testing.T) {
	got := BuildPrompt(promptItems(2), promptItems(1))

	assert.Contains(t, got, "24H HEADLINES:")
	assert.Contains(t, got, "30D CONTEXT:")
	assert.Contains(t, got, "Output ONLY valid JSON")
	assert.Contains(t, got, "Do NOT invent facts")
	assert.Contains(t, got, `[H1] (reuters.com) score=50 | Headline 1 | https://reuters.com/1`)
	assert.Contains(t, got, `[H2] (reuters.com) score=49 | Headline 2 | https://reuters.com/2`)
}

func TestBuildPromptCapsEachWindow(t *testing.T) {
	got := BuildPrompt(promptItems(35), nil)

	assert.Contains(t, got, "[H20]")
	assert.NotContains(t, got, "[H21]")
}

func TestPackWithIDsFlattensTitles(t *testing.T) {
	got := packWithIDs([]storage.Item{
		{Title: "  line one\nline two  ", Domain: "ft.com", Link: "https://ft.com/x"},
	})

	assert.Equal(t, "[H1] (ft.com) score=0 | line one line two | https://ft.com/x", got)
	assert.False(t, strings.Contains(got, "\n"))
}
