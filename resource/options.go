package resource

import (
	"time"

	"github.com/rs/zerolog"
)

// Cache defaults for a hook
const (
	DefaultCacheSize = 64
	DefaultCacheTTL  = 30 * time.Second
)

// Option configures a hook
type Option func(*settings)

type settings struct {
	logger    zerolog.Logger
	deferred  bool
	cacheSize int
	cacheTTL  time.Duration
	now       func() time.Time
}

func defaultSettings() settings {
	return settings{
		logger:    zerolog.Nop(),
		cacheSize: DefaultCacheSize,
		cacheTTL:  DefaultCacheTTL,
		now:       time.Now,
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Deferred skips the initial fetch on Start. The first fetch then happens
// on the first input change or Refresh.
func Deferred() Option {
	return func(s *settings) {
		s.deferred = true
	}
}

// WithCache sets the result cache size and how long a cached view may be
// served without a network call. A zero ttl disables serving from cache.
func WithCache(size int, ttl time.Duration) Option {
	return func(s *settings) {
		s.cacheSize = max(size, 0)
		s.cacheTTL = max(ttl, 0)
	}
}

// withClock replaces time.Now in tests
func withClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}
