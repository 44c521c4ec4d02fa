package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ozytarget/newsdesk/internal/digest"
	"github.com/ozytarget/newsdesk/internal/feed"
	"github.com/ozytarget/newsdesk/internal/storage"
)

const (
	defaultItemsHours = 24
	defaultItemsLimit = 80
	maxItemsLimit     = 500
)

type itemView struct {
	storage.Item

	Ago string `json:"ago"`
}

type itemsResponse struct {
	Items []itemView `json:"items"`
}

type digestResponse struct {
	TS          float64        `json:"ts"`
	WindowHours int            `json:"window_hours"`
	HourBucket  string         `json:"digest_hour,omitempty"`
	Pending     bool           `json:"pending"`
	Content     digest.Content `json:"content"`
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	hours := queryInt(r, "hours", defaultItemsHours)
	limit := queryInt(r, "limit", defaultItemsLimit)

	if limit > maxItemsLimit {
		limit = maxItemsLimit
	}

	items, err := s.store.ItemsSince(r.Context(), hours, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("query items failed")
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)

		return
	}

	now := s.now()
	views := make([]itemView, len(items))

	for i, item := range items {
		views[i] = itemView{Item: item, Ago: feed.TimeAgo(item.TS, now)}
	}

	s.writeJSON(w, itemsResponse{Items: views})
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	latest, err := s.store.LatestDigest(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("query digest failed")
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)

		return
	}

	if latest == nil {
		s.writeJSON(w, digestResponse{Pending: true, Content: digest.Pending()})

		return
	}

	var obj map[string]any

	content := digest.Pending()
	if err := json.Unmarshal(latest.Content, &obj); err == nil && obj != nil {
		content = digest.Normalize(obj, "")
	}

	s.writeJSON(w, digestResponse{
		TS:          latest.TS,
		WindowHours: latest.WindowHours,
		HourBucket:  latest.HourBucket,
		Content:     content,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("encode response failed")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
