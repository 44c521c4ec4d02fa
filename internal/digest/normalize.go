package digest

import "strconv"

const claimMaxLen = 260

// Normalize coerces a loosely-typed decoded object into the fixed schema.
// Every field is defaulted, reasoning is padded or truncated to exactly
// three entries, and scenarios always carry base, bull, and bear.
func Normalize(obj map[string]any, raw string) Content {
	return Content{
		Caption:   asString(obj["caption"]),
		Reasoning: normalizeReasoning(obj["reasoning"]),
		Bullets:   asStringList(obj["bullets"]),
		Scenarios: normalizeScenarios(obj["scenarios"]),
		Watchlist: asStringList(obj["watchlist"]),
		Raw:       truncateRaw(raw),
	}
}

func normalizeReasoning(v any) []Reason {
	var reasons []Reason

	switch r := v.(type) {
	case string:
		claim := r
		if len(claim) > claimMaxLen {
			claim = claim[:claimMaxLen]
		}

		reasons = []Reason{{Claim: claim}}
	case []any:
		for _, entry := range r {
			switch e := entry.(type) {
			case map[string]any:
				reasons = append(reasons, Reason{
					Claim:        asString(e["claim"]),
					EvidenceIDs:  asStringList(e["evidence_ids"]),
					WhyItMatters: asString(e["why_it_matters"]),
				})
			case string:
				reasons = append(reasons, Reason{Claim: e})
			}
		}
	}

	return padReasoning(reasons)
}

func normalizeScenarios(v any) Scenarios {
	sc, _ := v.(map[string]any)

	return Scenarios{
		Base: normalizeScenario(sc["base"]),
		Bull: normalizeScenario(sc["bull"]),
		Bear: normalizeScenario(sc["bear"]),
	}
}

func normalizeScenario(v any) Scenario {
	switch s := v.(type) {
	case map[string]any:
		return Scenario{
			Summary:     asString(s["summary"]),
			Triggers:    asStringList(s["triggers"]),
			EvidenceIDs: asStringList(s["evidence_ids"]),
		}
	case string:
		// Some outputs collapse a scenario to a bare sentence.
		return fillScenario(Scenario{Summary: s})
	default:
		return fillScenario(Scenario{})
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func asStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(list))

	for _, entry := range list {
		if s := asString(entry); s != "" {
			out = append(out, s)
		}
	}

	return out
}
