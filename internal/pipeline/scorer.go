package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ozytarget/newsdesk/internal/feed"
)

// Score bounds and per-signal contributions. Each signal is capped
// independently, then the total is clamped to [ScoreMin, ScoreMax].
const (
	ScoreMin = -50
	ScoreMax = 100

	instPoints   = 6
	instCap      = 40
	impactPoints = 8
	impactCap    = 30
	wirePoints   = 8
	wireCap      = 16

	whitelistBonus   = 18
	blacklistPenalty = 28

	noisePoints     = 10
	noiseCap        = 30
	clickbaitPoints = 15
	clickbaitCap    = 30
	modalPoints     = 6
	modalCap        = 18

	maxReasons = 6
)

// ScoredItem is the immutable output of the scoring pipeline.
type ScoredItem struct {
	feed.RawItem

	Domain      string   `json:"domain"`
	KeywordHits int      `json:"kw_hits"`
	NoiseHits   int      `json:"noise_hits"`
	Score       int      `json:"score"`
	Reasons     []string `json:"reasons"`
}

// Scorer assigns a bounded reputation/relevance score with auditable
// reason tags. Scoring is a pure function of the candidate's text and
// link domain.
type Scorer struct {
	highImpact termSet
	wire       termSet
	clickbait  termSet
	modal      termSet
	whitelist  []string
	blacklist  []string
}

func NewScorer(h Heuristics) *Scorer {
	return &Scorer{
		highImpact: newTermSet(h.HighImpact),
		wire:       newTermSet(h.Wire),
		clickbait:  newTermSet(h.Clickbait),
		modal:      newTermSet(h.ModalWeak),
		whitelist:  h.Whitelist,
		blacklist:  h.Blacklist,
	}
}

// Score evaluates one candidate. Signals are applied in a fixed order and
// each applied signal appends one reason tag; only the first six tags are
// kept so the breakdown stays short enough to display.
func (s *Scorer) Score(c Candidate) ScoredItem {
	blob := strings.TrimSpace(c.Title) + "\n" + strings.TrimSpace(c.Summary)
	folded := foldCaser.String(blob)

	domain := ExtractDomain(c.Link)

	score := 0
	reasons := make([]string, 0, maxReasons)

	if c.KeywordHits > 0 {
		score += capped(c.KeywordHits*instPoints, instCap)
		reasons = append(reasons, fmt.Sprintf("+inst(%d)", c.KeywordHits))
	}

	if hits := s.highImpact.countHits(folded); hits > 0 {
		score += capped(hits*impactPoints, impactCap)
		reasons = append(reasons, fmt.Sprintf("+impact(%d)", hits))
	}

	if hits := s.wire.countHits(folded); hits > 0 {
		score += capped(hits*wirePoints, wireCap)
		reasons = append(reasons, fmt.Sprintf("+wire(%d)", hits))
	}

	if domainIn(domain, s.whitelist) {
		score += whitelistBonus
		reasons = append(reasons, "+whitelist")
	}

	if domainIn(domain, s.blacklist) {
		score -= blacklistPenalty
		reasons = append(reasons, "-blacklist")
	}

	if c.NoiseHits > 0 {
		score -= capped(c.NoiseHits*noisePoints, noiseCap)
		reasons = append(reasons, fmt.Sprintf("-noise(%d)", c.NoiseHits))
	}

	if hits := s.clickbait.countHits(folded); hits > 0 {
		score -= capped(hits*clickbaitPoints, clickbaitCap)
		reasons = append(reasons, fmt.Sprintf("-clickbait(%d)", hits))
	}

	if hits := s.modal.countHits(folded); hits > 0 {
		score -= capped(hits*modalPoints, modalCap)
		reasons = append(reasons, fmt.Sprintf("-modal(%d)", hits))
	}

	if score < ScoreMin {
		score = ScoreMin
	}

	if score > ScoreMax {
		score = ScoreMax
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	return ScoredItem{
		RawItem:     c.RawItem,
		Domain:      domain,
		KeywordHits: c.KeywordHits,
		NoiseHits:   c.NoiseHits,
		Score:       score,
		Reasons:     reasons,
	}
}

func capped(points, limit int) int {
	if points > limit {
		return limit
	}

	return points
}

// ExtractDomain returns the lowercased host of a link with a leading
// "www." stripped. Unparseable links yield an empty domain, which matches
// no allow/block list.
func ExtractDomain(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Host)

	return strings.TrimPrefix(host, "www.")
}

func domainIn(domain string, patterns []string) bool {
	if domain == "" {
		return false
	}

	for _, p := range patterns {
		if strings.Contains(domain, p) {
			return true
		}
	}

	return false
}
