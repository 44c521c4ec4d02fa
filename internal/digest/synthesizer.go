package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ozytarget/newsdesk/internal/llm"
	"github.com/ozytarget/newsdesk/internal/storage"
)

// Query limits when reading windows back from storage; the prompt packer
// trims further.
const (
	recentQueryLimit  = 600
	contextQueryLimit = 1000

	hoursPerDay = 24
)

// Store is the slice of the persistence layer the synthesizer needs.
type Store interface {
	ItemsSince(ctx context.Context, hours, limit int) ([]storage.Item, error)
	LatestDigest(ctx context.Context) (*storage.Digest, error)
	InsertDigestIfAbsent(ctx context.Context, d storage.Digest) (bool, error)
}

// Options tunes the synthesis windows and gates.
type Options struct {
	WindowHours     int
	ContextDays     int
	MinItems        int
	MaxOutputTokens int

	// Interval is how long a stored digest stays current; within it the
	// text service is never invoked.
	Interval time.Duration
}

// Synthesizer builds digests from stored items, at most one per UTC hour.
type Synthesizer struct {
	store  Store
	client llm.Client
	opts   Options
	logger *zerolog.Logger
	now    func() time.Time
}

func NewSynthesizer(store Store, client llm.Client, opts Options, logger *zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		store:  store,
		client: client,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Generate returns the current digest, synthesizing a new one only when
// the stored digest has expired. The hour-bucket unique key makes the
// write race-free across concurrent instances: the second writer's insert
// is a no-op and both converge on the stored row.
func (s *Synthesizer) Generate(ctx context.Context) (Content, error) {
	now := s.now()

	latest, err := s.store.LatestDigest(ctx)
	if err != nil {
		return Pending(), fmt.Errorf("load latest digest: %w", err)
	}

	if latest != nil && float64(now.Unix())-latest.TS < s.opts.Interval.Seconds() {
		return decodeStored(latest.Content), nil
	}

	recent, err := s.store.ItemsSince(ctx, s.opts.WindowHours, recentQueryLimit)
	if err != nil {
		return Pending(), fmt.Errorf("load recent items: %w", err)
	}

	if len(recent) < s.opts.MinItems {
		s.logger.Debug().Int("items", len(recent)).Int("min", s.opts.MinItems).
			Msg("too few items for digest, skipping synthesis")

		return Waiting(s.opts.MinItems), nil
	}

	contextItems, err := s.store.ItemsSince(ctx, s.opts.ContextDays*hoursPerDay, contextQueryLimit)
	if err != nil {
		return Pending(), fmt.Errorf("load context items: %w", err)
	}

	sort.SliceStable(contextItems, func(i, j int) bool {
		if contextItems[i].Score != contextItems[j].Score {
			return contextItems[i].Score > contextItems[j].Score
		}

		return contextItems[i].TS > contextItems[j].TS
	})

	content := s.invoke(ctx, BuildPrompt(recent, contextItems))

	return s.persist(ctx, now, content)
}

// invoke calls the text service once and repairs whatever comes back.
// Service failure degrades to a placeholder; it is never surfaced as an
// error to the pipeline.
func (s *Synthesizer) invoke(ctx context.Context, prompt string) Content {
	raw, err := s.client.Generate(ctx, prompt, s.opts.MaxOutputTokens, true)
	if err != nil {
		s.logger.Warn().Err(err).Msg("llm generate failed")

		return Placeholder("AI error.", err.Error(), "")
	}

	return Repair(raw)
}

func (s *Synthesizer) persist(ctx context.Context, now time.Time, content Content) (Content, error) {
	payload, err := json.Marshal(content)
	if err != nil {
		return content, fmt.Errorf("marshal digest content: %w", err)
	}

	won, err := s.store.InsertDigestIfAbsent(ctx, storage.Digest{
		TS:          float64(now.Unix()),
		WindowHours: s.opts.WindowHours,
		HourBucket:  storage.HourBucket(now),
		Content:     payload,
	})
	if err != nil {
		return content, fmt.Errorf("store digest: %w", err)
	}

	if !won {
		// Another instance beat us to this hour; converge on its content.
		stored, err := s.store.LatestDigest(ctx)
		if err != nil {
			return content, fmt.Errorf("reload digest after lost race: %w", err)
		}

		if stored != nil {
			return decodeStored(stored.Content), nil
		}
	}

	return content, nil
}

// decodeStored renormalizes persisted content so schema guarantees hold
// even for rows written by older versions.
func decodeStored(payload json.RawMessage) Content {
	var obj map[string]any

	if err := json.Unmarshal(payload, &obj); err != nil || obj == nil {
		return Placeholder("Stored digest unreadable.", "content_json did not decode", string(payload))
	}

	return Normalize(obj, "")
}
