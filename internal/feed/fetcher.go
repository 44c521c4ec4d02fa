package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

const (
	googleNewsRSS = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

	// Browser-like UA; Google News serves a reduced feed to unknown agents.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"

	sourceGoogleNews = "google-news"

	maxEntriesPerFetch = 60
)

// Fetcher pulls headline candidates from the Google News RSS search feed.
type Fetcher struct {
	client   *http.Client
	parser   *gofeed.Parser
	excluded []string
	logger   *zerolog.Logger
}

// NewFetcher creates a Fetcher. The excluded terms are negated in the
// upstream query so clearly out-of-domain results are cut at the source;
// the relevance filter still hard-blocks them locally.
func NewFetcher(timeout time.Duration, excluded []string, logger *zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		parser:   gofeed.NewParser(),
		excluded: excluded,
		logger:   logger,
	}
}

// Fetch queries Google News for the given keywords and returns raw items.
func (f *Fetcher) Fetch(ctx context.Context, keywords []string, maxAgeHours int) ([]RawItem, error) {
	feedURL := fmt.Sprintf(googleNewsRSS, url.QueryEscape(buildQuery(keywords, f.excluded, maxAgeHours)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]RawItem, 0, len(parsed.Items))

	for i, entry := range parsed.Items {
		if i >= maxEntriesPerFetch {
			break
		}

		items = append(items, entryToRawItem(entry))
	}

	f.logger.Debug().Int("entries", len(items)).Msg("fetched feed")

	return items, nil
}

func entryToRawItem(entry *gofeed.Item) RawItem {
	published := strings.TrimSpace(entry.Published)

	ts := 0.0
	if entry.PublishedParsed != nil {
		ts = float64(entry.PublishedParsed.UTC().Unix())
	} else {
		ts = ParseTime(published)
	}

	return RawItem{
		Source:        sourceGoogleNews,
		Title:         strings.TrimSpace(entry.Title),
		Link:          strings.TrimSpace(entry.Link),
		PublishedText: published,
		Summary:       strings.TrimSpace(entry.Description),
		PublishedAt:   ts,
	}
}

// buildQuery assembles the Google News search expression: OR-joined
// keywords, a recency window, and negated excluded terms.
func buildQuery(keywords, excluded []string, maxAgeHours int) string {
	base := "SPY"
	if len(keywords) > 0 {
		base = strings.Join(keywords, " OR ")
	}

	when := "when:1d"
	if maxAgeHours > 24 {
		when = "when:2d"
	}

	var sb strings.Builder

	sb.WriteString("(")
	sb.WriteString(base)
	sb.WriteString(") ")
	sb.WriteString(when)

	for _, term := range excluded {
		sb.WriteString(" -")
		sb.WriteString(term)
	}

	return sb.String()
}
