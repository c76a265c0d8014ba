package resource

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/fanzhongxing/jcc-web/apiclient"
	"github.com/fanzhongxing/jcc-web/cache"
	"github.com/fanzhongxing/jcc-web/reactive"
)

// Definition binds a resource to its list endpoint and inputs
type Definition struct {
	// Resource names the resource in cache keys
	Resource string
	// Path is the list endpoint, relative to the client's base path
	Path string
	// Inputs are observed; any change re-derives the key
	Inputs []reactive.Input
	// Query snapshots the current input values
	Query func() Query
}

// State is a consistent snapshot of a hook
type State[T any] struct {
	Key    CacheKey
	View   *ListViewModel[T]
	Status Status
	Err    error
}

type cachedView[T any] struct {
	view      ListViewModel[T]
	fetchedAt time.Time
}

// Paginated keeps a ListViewModel in sync with a set of inputs. Only the
// result for the key that is current when it resolves is applied; results
// for superseded keys are dropped.
type Paginated[T any] struct {
	def      Definition
	client   apiclient.Doer
	logger   zerolog.Logger
	deferred bool
	ttl      time.Duration
	now      func() time.Time

	results *cache.LRU[CacheKey, cachedView[T]]
	group   singleflight.Group
	changes reactive.Ordered[State[T]]

	mu      sync.Mutex
	idle    *sync.Cond
	pending int
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	closed  bool
	unsubs  []func()

	key    CacheKey
	view   *ListViewModel[T]
	status Status
	err    error
}

// NewPaginated creates a hook for def. Call Start to begin observing inputs.
func NewPaginated[T any](client apiclient.Doer, def Definition, opts ...Option) *Paginated[T] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	p := &Paginated[T]{
		def:      def,
		client:   client,
		logger:   s.logger.With().Str("resource", def.Resource).Logger(),
		deferred: s.deferred,
		ttl:      s.cacheTTL,
		now:      s.now,
		results:  cache.NewLRU[CacheKey, cachedView[T]](s.cacheSize),
	}
	p.idle = sync.NewCond(&p.mu)
	return p
}

// Start subscribes to the inputs and, unless deferred, fetches the current
// key. Fetches started by input changes use ctx.
func (p *Paginated[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.ctx, p.cancel = context.WithCancel(ctx)
	for _, in := range p.def.Inputs {
		p.unsubs = append(p.unsubs, in.OnChange(p.inputChanged))
	}
	p.mu.Unlock()

	if !p.deferred {
		p.trigger()
	}
}

// Close stops observing inputs and empties the cache. Pending results are
// discarded.
func (p *Paginated[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	unsubs := p.unsubs
	p.unsubs = nil
	cancel := p.cancel
	p.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	if cancel != nil {
		cancel()
	}
	p.results.Clear()
}

func (p *Paginated[T]) inputChanged() {
	p.trigger()
}

// trigger re-derives the key and fetches it in the background if it
// differs from the current one.
func (p *Paginated[T]) trigger() {
	p.mu.Lock()
	if !p.started || p.closed {
		p.mu.Unlock()
		return
	}

	q := p.def.Query()
	key := q.Key(p.def.Resource)
	if key == p.key && p.status != StatusIdle {
		p.mu.Unlock()
		return
	}

	p.key = key
	if cached, ok := p.fresh(key); ok {
		view := cached.view
		p.view = &view
		p.status = StatusSuccess
		p.err = nil
		p.changes.Push(p.stateLocked())
		p.mu.Unlock()

		p.logger.Debug().Str("key", string(key)).Msg("Serving cached view")
		p.changes.Deliver()
		return
	}

	p.status = StatusLoading
	p.pending++
	ctx := p.ctx
	p.changes.Push(p.stateLocked())
	p.mu.Unlock()

	p.changes.Deliver()
	go p.load(ctx, key, q)
}

// Refresh drops the cached view of the current key, fetches it again and returns
// once the result has been applied. Failures are reported through Status
// and Err.
func (p *Paginated[T]) Refresh(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	q := p.def.Query()
	key := q.Key(p.def.Resource)
	p.results.Remove(key)
	p.key = key
	p.status = StatusLoading
	p.pending++
	p.changes.Push(p.stateLocked())
	p.mu.Unlock()

	p.changes.Deliver()
	p.load(ctx, key, q)
}

// load fetches key, sharing the call with any fetch of the same key that
// is already in flight, and applies the result.
func (p *Paginated[T]) load(ctx context.Context, key CacheKey, q Query) {
	defer p.done()

	v, err, shared := p.group.Do(string(key), func() (any, error) {
		raw, err := apiclient.Fetch[*RawList[T]](ctx, p.client, apiclient.Request{
			Path:   p.def.Path,
			Method: http.MethodGet,
			Params: q.Params(),
		})
		if err != nil {
			return nil, err
		}
		return Transform(raw, q.Page()), nil
	})

	log := p.logger.With().Str("key", string(key)).Bool("shared", shared).Logger()

	var view ListViewModel[T]
	if err == nil {
		view = v.(ListViewModel[T])
		p.results.Put(key, cachedView[T]{view: view, fetchedAt: p.now()})
	}

	p.mu.Lock()
	if p.closed || key != p.key {
		current := p.key
		p.mu.Unlock()
		log.Debug().Str("current", string(current)).Msg("Discarding stale result")
		return
	}

	if err != nil {
		p.status = StatusError
		p.err = err
	} else {
		p.view = &view
		p.status = StatusSuccess
		p.err = nil
	}
	p.changes.Push(p.stateLocked())
	p.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("Fetch failed, keeping previous view")
	} else {
		log.Debug().Int("items", len(view.Items)).Int("total", view.Total).Msg("Fetched page")
	}
	p.changes.Deliver()
}

func (p *Paginated[T]) done() {
	p.mu.Lock()
	p.pending--
	if p.pending == 0 {
		p.idle.Broadcast()
	}
	p.mu.Unlock()
}

// fresh returns the cached view for key if it is within the TTL.
// Callers hold p.mu.
func (p *Paginated[T]) fresh(key CacheKey) (cachedView[T], bool) {
	if p.ttl <= 0 {
		return cachedView[T]{}, false
	}
	cached, ok := p.results.Get(key)
	if !ok || p.now().Sub(cached.fetchedAt) > p.ttl {
		return cachedView[T]{}, false
	}
	return cached, true
}

func (p *Paginated[T]) stateLocked() State[T] {
	return State[T]{
		Key:    p.key,
		View:   p.view,
		Status: p.status,
		Err:    p.err,
	}
}

// Wait blocks until no fetch is pending and subscribers have seen every
// state. It must not be called from a subscriber.
func (p *Paginated[T]) Wait() {
	p.mu.Lock()
	for p.pending > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
	p.changes.Wait()
}

// Subscribe registers fn to receive every state change, in the order the
// hook went through them. Callbacks run on the goroutine delivering.
func (p *Paginated[T]) Subscribe(fn func(State[T])) (cancel func()) {
	return p.changes.Subscribe(fn)
}

// State returns a snapshot of the hook
func (p *Paginated[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// View returns the last successful view model
func (p *Paginated[T]) View() (ListViewModel[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view == nil {
		return ListViewModel[T]{}, false
	}
	return *p.view, true
}

// Items returns the items of the last successful fetch
func (p *Paginated[T]) Items() []T {
	if view, ok := p.View(); ok {
		return view.Items
	}
	return []T{}
}

// Total returns the total of the last successful fetch, or 0
func (p *Paginated[T]) Total() int {
	view, _ := p.View()
	return view.Total
}

// TotalPages returns the page count of the last successful fetch, or 1
func (p *Paginated[T]) TotalPages() int {
	if view, ok := p.View(); ok {
		return view.TotalPages
	}
	return 1
}

// Status returns the fetch status
func (p *Paginated[T]) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Err returns the error of the last failed fetch for the current key
func (p *Paginated[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Key returns the current cache key
func (p *Paginated[T]) Key() CacheKey {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.key
}
