package storage

import "testing"

func TestItemHash(t *testing.T) {
	base := ItemHash("Fed holds rates", "https://example.com/a")

	tests := []struct {
		name  string
		title string
		link  string
		same  bool
	}{
		{name: "case insensitive", title: "FED HOLDS RATES", link: "HTTPS://EXAMPLE.COM/A", same: true},
		{name: "whitespace insensitive", title: "  Fed holds rates  ", link: " https://example.com/a ", same: true},
		{name: "different title", title: "Fed cuts rates", link: "https://example.com/a", same: false},
		{name: "different link", title: "Fed holds rates", link: "https://example.com/b", same: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemHash(tt.title, tt.link)
			if (got == base) != tt.same {
				t.Errorf("ItemHash(%q, %q) == base is %v, want %v", tt.title, tt.link, got == base, tt.same)
			}
		})
	}

	if len(base) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(base))
	}
}
