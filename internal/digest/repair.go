package digest

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The repair ladder: increasingly lenient strategies tried in fixed order.
// Each strategy either yields a decoded object or reports failure; the
// last rung always succeeds with a diagnostic placeholder.

var (
	fenceOpenRe  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
)

// Repair turns arbitrary model output into a normalized digest. It never
// fails: unparseable input degrades to a placeholder carrying the raw text.
func Repair(raw string) Content {
	if obj, ok := parseDirect(raw); ok {
		return Normalize(obj, raw)
	}

	if obj, ok := parseExtracted(raw); ok {
		return Normalize(obj, raw)
	}

	return Placeholder("AI parse error.", "could not extract a JSON object from model output", raw)
}

// parseDirect strips a Markdown code fence if present and attempts a
// straight parse.
func parseDirect(raw string) (map[string]any, bool) {
	return parseObject(stripFences(raw))
}

// parseExtracted scans for the first balanced top-level brace-delimited
// object and parses that substring. Handles output like
// "Here is the digest: {...} hope this helps".
func parseExtracted(raw string) (map[string]any, bool) {
	extracted := extractFirstObject(stripFences(raw))
	if extracted == "" {
		return nil, false
	}

	return parseObject(extracted)
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any

	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}

	return obj, true
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// extractFirstObject returns the first balanced {...} span. Depth counting
// respects quoted strings and escapes, so braces inside string literals
// don't terminate the scan.
func extractFirstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inStr := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if inStr {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inStr = false
			}

			continue
		}

		switch ch {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
