package llm

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	breakerThreshold = 5
	breakerTimeout   = 1 * time.Minute
)

// breaker stops calls to a provider after consecutive failures, so a dead
// service doesn't burn the rate budget of every digest cycle.
type breaker struct {
	mu                  sync.Mutex
	consecutiveFailures int
	openUntil           time.Time
	logger              *zerolog.Logger
}

func newBreaker(logger *zerolog.Logger) *breaker {
	return &breaker{logger: logger}
}

func (b *breaker) check() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Now().Before(b.openUntil) {
		return fmt.Errorf("llm circuit breaker open until %v", b.openUntil)
	}

	return nil
}

func (b *breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures = 0
}

func (b *breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures++
	if b.consecutiveFailures >= breakerThreshold {
		b.openUntil = time.Now().Add(breakerTimeout)
		b.logger.Warn().
			Int("consecutive_failures", b.consecutiveFailures).
			Time("open_until", b.openUntil).
			Msg("llm circuit breaker opened")
	}
}
