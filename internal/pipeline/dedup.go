package pipeline

import (
	"regexp"
	"strings"

	"github.com/ozytarget/newsdesk/internal/feed"
)

const titleKeyMaxLen = 240

var whitespaceRe = regexp.MustCompile(`\s+`)

// Dedupe removes duplicate raw items, first occurrence wins.
// The key prefers the trimmed link; items without one fall back to a
// whitespace-collapsed lowercased title truncated to 240 characters.
func Dedupe(items []feed.RawItem) []feed.RawItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]feed.RawItem, 0, len(items))

	for _, item := range items {
		key := dedupeKey(item)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, item)
	}

	return out
}

func dedupeKey(item feed.RawItem) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return "link\x00" + link
	}

	title := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(item.Title)), " ")
	if len(title) > titleKeyMaxLen {
		title = title[:titleKeyMaxLen]
	}

	return "title\x00" + title
}
