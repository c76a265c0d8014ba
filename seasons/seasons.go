// Package seasons exposes the season list and derives the season that is
// currently active.
package seasons

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fanzhongxing/jcc-web/apiclient"
	"github.com/fanzhongxing/jcc-web/resource"
)

// Endpoint details
const (
	Resource = "season"
	ListPath = "/season/list"
)

// DefaultSeason is the active season when no listed season has a name
const DefaultSeason = "S15"

// Season is one game season
type Season struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Introduce string `json:"introduce"`
	Sort      int    `json:"sort"`
	Status    int    `json:"status"`
}

// LatestActive returns the name of the first season, in the order given,
// with a non-empty name, or DefaultSeason.
func LatestActive(items []Season) string {
	for _, s := range items {
		if s.Name != "" {
			return s.Name
		}
	}
	return DefaultSeason
}

// Hook holds the season list. It has no inputs, so it is loaded
// explicitly.
type Hook struct {
	client apiclient.Doer
	logger zerolog.Logger

	mu      sync.RWMutex
	items   []Season
	total   int
	pending bool
	err     error
}

// New creates a season hook
func New(client apiclient.Doer, logger zerolog.Logger) *Hook {
	return &Hook{
		client: client,
		logger: logger.With().Str("resource", Resource).Logger(),
		items:  []Season{},
	}
}

// Key returns the cache key of the season list
func (h *Hook) Key() resource.CacheKey {
	return resource.DeriveKey(Resource)
}

// Load fetches the season list. A failure keeps the previous list and is
// reported through Err.
func (h *Hook) Load(ctx context.Context) {
	h.mu.Lock()
	h.pending = true
	h.mu.Unlock()

	raw, err := apiclient.Fetch[*resource.RawList[Season]](ctx, h.client, apiclient.Request{
		Path:   ListPath,
		Method: http.MethodGet,
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = false

	if err != nil {
		h.err = err
		h.logger.Warn().Err(err).Msg("Failed to load seasons")
		return
	}

	h.err = nil
	h.items = []Season{}
	h.total = 0
	if raw != nil {
		if raw.List != nil {
			h.items = raw.List
		}
		h.total = int(raw.Total)
	}
	h.logger.Debug().Int("count", len(h.items)).Msg("Loaded seasons")
}

// Items returns the loaded seasons
func (h *Hook) Items() []Season {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.items
}

// Total returns the total reported by the backend
func (h *Hook) Total() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// LatestActive returns the active season of the loaded list
func (h *Hook) LatestActive() string {
	return LatestActive(h.Items())
}

// Pending reports whether a load is in progress
func (h *Hook) Pending() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pending
}

// Err returns the error of the last failed load
func (h *Hook) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}
