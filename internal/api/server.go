// Package api exposes the read-only HTTP surface for the presentation
// layer: latest scored items, the latest (or pending) digest, health, and
// metrics. Rendering is the client's concern.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ozytarget/newsdesk/internal/storage"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Store is the slice of the persistence layer the API reads from.
type Store interface {
	ItemsSince(ctx context.Context, hours, limit int) ([]storage.Item, error)
	LatestDigest(ctx context.Context) (*storage.Digest, error)
}

type Server struct {
	store  Store
	addr   string
	logger *zerolog.Logger
	now    func() time.Time
}

func NewServer(store Store, addr string, logger *zerolog.Logger) *Server {
	return &Server{
		store:  store,
		addr:   addr,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/items", s.handleItems)
	mux.HandleFunc("/api/digest", s.handleDigest)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", s.addr).Msg("api server starting")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}

	return nil
}
