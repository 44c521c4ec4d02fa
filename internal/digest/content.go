// Package digest synthesizes structured hourly digests from stored items.
//
// The external text generator is treated as untrusted: whatever it returns
// is pushed through a repair ladder and normalized into the fixed Content
// schema, so downstream consumers can index every field without existence
// checks.
package digest

import "fmt"

// reasoningCount is the exact number of reasoning entries in a normalized
// digest; short lists are padded, long lists truncated.
const reasoningCount = 3

// rawLimit caps the diagnostic copy of the model's raw output.
const rawLimit = 2000

// Content is the fixed digest schema.
type Content struct {
	Caption   string    `json:"caption"`
	Reasoning []Reason  `json:"reasoning"`
	Bullets   []string  `json:"bullets"`
	Scenarios Scenarios `json:"scenarios"`
	Watchlist []string  `json:"watchlist"`
	Raw       string    `json:"_raw,omitempty"`
}

// Reason is one entry of the digest's reasoning chain.
type Reason struct {
	Claim        string   `json:"claim"`
	EvidenceIDs  []string `json:"evidence_ids"`
	WhyItMatters string   `json:"why_it_matters"`
}

// Scenario describes one market path.
type Scenario struct {
	Summary     string   `json:"summary"`
	Triggers    []string `json:"triggers"`
	EvidenceIDs []string `json:"evidence_ids"`
}

// Scenarios always carries exactly base, bull, and bear.
type Scenarios struct {
	Base Scenario `json:"base"`
	Bull Scenario `json:"bull"`
	Bear Scenario `json:"bear"`
}

// Placeholder builds a complete, deterministic digest carrying an error
// caption and the raw model output for diagnostics. Used when every repair
// strategy failed; the caller never sees a crash or an empty shape.
func Placeholder(caption, detail, raw string) Content {
	return normalizeShell(Content{
		Caption: caption,
		Reasoning: []Reason{
			{Claim: "Model output was not valid JSON", WhyItMatters: detail},
		},
		Raw: truncateRaw(raw),
	})
}

// Waiting is the digest returned (and never stored) when too few fresh
// items exist for a meaningful synthesis.
func Waiting(minItems int) Content {
	return normalizeShell(Content{
		Caption: "Waiting for more headlines...",
		Reasoning: []Reason{
			{
				Claim:        "Not enough fresh headlines yet for a solid digest",
				WhyItMatters: fmt.Sprintf("need at least %d items", minItems),
			},
		},
	})
}

// Pending is what the read API serves before the first digest exists.
func Pending() Content {
	return normalizeShell(Content{Caption: "Digest pending..."})
}

// normalizeShell fills nil slices and pads reasoning so a hand-built
// Content satisfies the same shape guarantees as a repaired one.
func normalizeShell(c Content) Content {
	if c.Bullets == nil {
		c.Bullets = []string{}
	}

	if c.Watchlist == nil {
		c.Watchlist = []string{}
	}

	c.Reasoning = padReasoning(c.Reasoning)
	c.Scenarios.Base = fillScenario(c.Scenarios.Base)
	c.Scenarios.Bull = fillScenario(c.Scenarios.Bull)
	c.Scenarios.Bear = fillScenario(c.Scenarios.Bear)

	return c
}

func padReasoning(reasons []Reason) []Reason {
	out := make([]Reason, 0, reasoningCount)

	for _, r := range reasons {
		if len(out) == reasoningCount {
			break
		}

		if r.EvidenceIDs == nil {
			r.EvidenceIDs = []string{}
		}

		out = append(out, r)
	}

	for len(out) < reasoningCount {
		out = append(out, Reason{EvidenceIDs: []string{}})
	}

	return out
}

func fillScenario(s Scenario) Scenario {
	if s.Triggers == nil {
		s.Triggers = []string{}
	}

	if s.EvidenceIDs == nil {
		s.EvidenceIDs = []string{}
	}

	return s
}

func truncateRaw(raw string) string {
	if len(raw) > rawLimit {
		return raw[:rawLimit]
	}

	return raw
}
