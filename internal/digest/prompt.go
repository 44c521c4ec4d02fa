package digest

import (
	"fmt"
	"strings"

	"github.com/ozytarget/newsdesk/internal/storage"
)

// packLimit caps how many items from each window go into the prompt.
const packLimit = 20

const promptHeader = `You are a markets editor for an institutional desk. Output ONLY valid JSON (no markdown, no prose).

JSON SCHEMA:
{
  "caption": "<2 lines max>",
  "reasoning": [
    {"claim": "...", "evidence_ids": ["H1"], "why_it_matters": "..."},
    {"claim": "...", "evidence_ids": ["H2"], "why_it_matters": "..."},
    {"claim": "...", "evidence_ids": ["H3"], "why_it_matters": "..."}
  ],
  "scenarios": {
    "base": {"summary": "...", "triggers": ["..."], "evidence_ids": ["H1"]},
    "bull": {"summary": "...", "triggers": ["..."], "evidence_ids": ["H2"]},
    "bear": {"summary": "...", "triggers": ["..."], "evidence_ids": ["H3"]}
  },
  "bullets": ["..."],
  "watchlist": ["item1", "item2"]
}

RULES:
- Do NOT invent facts that are not present in the supplied headlines.
- Cite only the supplied H-identifiers as evidence.
- Output ONLY valid JSON, nothing else.`

// BuildPrompt packs the recent and context windows into the fixed-format
// digest instruction. Context items should arrive sorted by score then
// time descending; both packs are capped at 20 items.
func BuildPrompt(recent, contextWindow []storage.Item) string {
	var sb strings.Builder

	sb.WriteString(promptHeader)
	sb.WriteString("\n\n24H HEADLINES:\n")
	sb.WriteString(packWithIDs(recent))
	sb.WriteString("\n\n30D CONTEXT:\n")
	sb.WriteString(packWithIDs(contextWindow))

	return sb.String()
}

func packWithIDs(items []storage.Item) string {
	lines := make([]string, 0, packLimit)

	for i, item := range items {
		if i == packLimit {
			break
		}

		title := strings.ReplaceAll(strings.TrimSpace(item.Title), "\n", " ")
		lines = append(lines, fmt.Sprintf("[H%d] (%s) score=%d | %s | %s",
			i+1, item.Domain, item.Score, title, item.Link))
	}

	return strings.Join(lines, "\n")
}
