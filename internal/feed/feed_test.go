package feed

import (
	"strings"
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{
			name:  "rfc1123 feed timestamp",
			value: "Mon, 31 Aug 2026 12:00:00 GMT",
			want:  float64(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC).Unix()),
		},
		{
			name:  "iso timestamp",
			value: "2026-08-31T12:00:00Z",
			want:  float64(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC).Unix()),
		},
		{name: "empty", value: "", want: 0},
		{name: "garbage", value: "not a date", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTime(tt.value); got != tt.want {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   float64
		want string
	}{
		{name: "seconds", ts: float64(now.Add(-42 * time.Second).Unix()), want: "42s"},
		{name: "minutes", ts: float64(now.Add(-5 * time.Minute).Unix()), want: "5m"},
		{name: "hours", ts: float64(now.Add(-3 * time.Hour).Unix()), want: "3h"},
		{name: "future clamps to zero", ts: float64(now.Add(time.Minute).Unix()), want: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeAgo(tt.ts, now); got != tt.want {
				t.Errorf("TimeAgo(%v) = %q, want %q", tt.ts, got, tt.want)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	got := buildQuery([]string{"SPY", "FOMC"}, []string{"Broncos", "NFL"}, 24)

	if !strings.HasPrefix(got, "(SPY OR FOMC) when:1d") {
		t.Errorf("buildQuery() = %q, want OR-joined keywords with recency window", got)
	}

	for _, neg := range []string{" -Broncos", " -NFL"} {
		if !strings.Contains(got, neg) {
			t.Errorf("buildQuery() = %q, want %q present", got, neg)
		}
	}
}

func TestBuildQueryWiderWindow(t *testing.T) {
	got := buildQuery([]string{"SPY"}, nil, 48)

	if !strings.Contains(got, "when:2d") {
		t.Errorf("buildQuery() = %q, want when:2d for a window beyond a day", got)
	}
}

func TestBuildQueryDefaultKeyword(t *testing.T) {
	got := buildQuery(nil, nil, 24)

	if !strings.HasPrefix(got, "(SPY)") {
		t.Errorf("buildQuery() = %q, want SPY fallback", got)
	}
}
