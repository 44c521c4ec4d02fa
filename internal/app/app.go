// Package app wires the components and sequences the refresh cycle:
// fetch -> normalize/dedupe -> filter -> score -> persist -> prune ->
// maybe-synthesize-digest. One cycle runs per tick; no stage failure is
// fatal, the worst outcome is a cycle that produced nothing new.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ozytarget/newsdesk/internal/config"
	"github.com/ozytarget/newsdesk/internal/digest"
	"github.com/ozytarget/newsdesk/internal/feed"
	"github.com/ozytarget/newsdesk/internal/llm"
	"github.com/ozytarget/newsdesk/internal/observability"
	"github.com/ozytarget/newsdesk/internal/pipeline"
	"github.com/ozytarget/newsdesk/internal/storage"
	"github.com/ozytarget/newsdesk/internal/worker"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

type App struct {
	cfg     *config.Config
	store   *storage.Store
	fetcher *feed.Fetcher
	pipe    *pipeline.Pipeline
	synth   *digest.Synthesizer
	logger  *zerolog.Logger
}

func New(cfg *config.Config, store *storage.Store, logger *zerolog.Logger) *App {
	heuristics := pipeline.DefaultHeuristics()

	filter := pipeline.NewFilter(heuristics, cfg.MinKeywordHits, cfg.MaxNoiseHits, cfg.MaxArticleAgeHours)
	scorer := pipeline.NewScorer(heuristics)

	synth := digest.NewSynthesizer(store, llm.New(cfg, logger), digest.Options{
		WindowHours:     cfg.RecentWindowHours,
		ContextDays:     cfg.ContextDays,
		MinItems:        cfg.MinDigestItems,
		MaxOutputTokens: cfg.LLMMaxTokens,
		Interval:        cfg.DigestInterval,
	}, logger)

	return &App{
		cfg:     cfg,
		store:   store,
		fetcher: feed.NewFetcher(cfg.FetchTimeout, heuristics.HardBlock, logger),
		pipe:    pipeline.New(filter, scorer, logger),
		synth:   synth,
		logger:  logger,
	}
}

// Run executes refresh cycles on the configured interval until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	return worker.Loop(ctx, worker.Config{
		Name:       "refresh",
		Interval:   a.cfg.RefreshInterval,
		RunOnStart: true,
		OnTick:     a.runCycle,
		Logger:     a.logger,
	})
}

// RunOnce executes a single refresh cycle and returns.
func (a *App) RunOnce(ctx context.Context) error {
	a.runCycle(ctx)

	return nil
}

func (a *App) runCycle(ctx context.Context) {
	started := time.Now()
	status := statusOK

	defer func() {
		observability.CycleRuns.WithLabelValues(status).Inc()
		observability.CycleDuration.Observe(time.Since(started).Seconds())
	}()

	// Feed failure degrades to an empty batch; the digest step still runs
	// against whatever is already stored.
	raw, err := a.fetcher.Fetch(ctx, a.cfg.FeedKeywords, a.cfg.MaxArticleAgeHours)
	if err != nil {
		a.logger.Warn().Err(err).Msg("feed fetch failed")

		status = statusError
		raw = nil
	}

	observability.ItemsFetched.Add(float64(len(raw)))

	scored := a.pipe.Process(raw)

	if len(scored) > 0 {
		inserted, err := a.store.InsertItems(ctx, scored)
		if err != nil {
			// Operator-visible; the next cycle retries.
			a.logger.Error().Err(err).Msg("insert items failed")

			status = statusError
		} else {
			observability.ItemsStored.Add(float64(inserted))

			pruned, err := a.store.PruneOlderThan(ctx, a.cfg.RetentionDays)
			if err != nil {
				a.logger.Error().Err(err).Msg("retention pruning failed")

				status = statusError
			} else {
				observability.ItemsPruned.Add(float64(pruned))
			}
		}
	}

	a.maybeDigest(ctx)

	a.logger.Info().
		Int("fetched", len(raw)).
		Int("scored", len(scored)).
		Dur("took", time.Since(started)).
		Msg("refresh cycle finished")
}

// maybeDigest runs digest synthesis after persistence has completed. The
// external call is bounded by its own timeout and its failure never
// aborts the cycle.
func (a *App) maybeDigest(ctx context.Context) {
	digestCtx, cancel := context.WithTimeout(ctx, a.cfg.LLMTimeout)
	defer cancel()

	if _, err := a.synth.Generate(digestCtx); err != nil {
		a.logger.Error().Err(err).Msg("digest synthesis failed")
		observability.DigestRuns.WithLabelValues(statusError).Inc()

		return
	}

	observability.DigestRuns.WithLabelValues(statusOK).Inc()
}
