package resource

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanzhongxing/jcc-web/apiclient"
	"github.com/fanzhongxing/jcc-web/reactive"
)

type item struct {
	Name string `json:"name"`
}

type reply struct {
	body string
	err  error
}

// gatedDoer holds every request until the test releases a reply for the
// request's page param.
type gatedDoer struct {
	mu    sync.Mutex
	calls []apiclient.Request
	gates map[string]chan reply
}

func newGatedDoer() *gatedDoer {
	return &gatedDoer{gates: make(map[string]chan reply)}
}

func (d *gatedDoer) gate(page string) chan reply {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch, ok := d.gates[page]
	if !ok {
		ch = make(chan reply, 8)
		d.gates[page] = ch
	}
	return ch
}

func (d *gatedDoer) release(page, body string) {
	d.gate(page) <- reply{body: body}
}

func (d *gatedDoer) fail(page string, err error) {
	d.gate(page) <- reply{err: err}
}

func (d *gatedDoer) Do(ctx context.Context, req apiclient.Request) (json.RawMessage, error) {
	page, _ := req.Params["page"].(string)

	d.mu.Lock()
	d.calls = append(d.calls, req)
	d.mu.Unlock()

	select {
	case r := <-d.gate(page):
		if r.err != nil {
			return nil, r.err
		}
		return json.RawMessage(r.body), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *gatedDoer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

type inputs struct {
	page  *reactive.Value[int]
	size  *reactive.Value[int]
	query *reactive.Value[string]
}

func newInputs() inputs {
	return inputs{
		page:  reactive.NewValue(1),
		size:  reactive.NewValue(10),
		query: reactive.NewValue(""),
	}
}

func (in inputs) definition() Definition {
	return Definition{
		Resource: "items",
		Path:     "/items/list",
		Inputs:   []reactive.Input{in.page, in.size, in.query},
		Query: func() Query {
			return Query{}.WithPage(in.page.Get(), in.size.Get()).With("q", in.query.Get())
		},
	}
}

func TestPaginatedInitialFetch(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()
	h := NewPaginated[item](doer, in.definition(), WithCache(0, 0))
	defer h.Close()

	assert.Equal(t, StatusIdle, h.Status())
	assert.Equal(t, 1, h.TotalPages())
	assert.NotNil(t, h.Items())

	doer.release("1", `{"list":[{"name":"a"},{"name":"b"}],"total":"21"}`)
	h.Start(context.Background())
	h.Wait()

	assert.Equal(t, StatusSuccess, h.Status())
	assert.NoError(t, h.Err())
	assert.Equal(t, []item{{"a"}, {"b"}}, h.Items())
	assert.Equal(t, 21, h.Total())
	assert.Equal(t, 3, h.TotalPages())
	assert.Equal(t, CacheKey("items:1:10:"), h.Key())

	require.Equal(t, 1, doer.callCount())
	req := doer.calls[0]
	assert.Equal(t, "/items/list", req.Path)
	_, hasQuery := req.Params["q"]
	assert.False(t, hasQuery)
}

func TestPaginatedRefetchOnInputChange(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()
	h := NewPaginated[item](doer, in.definition(), WithCache(0, 0))
	defer h.Close()

	doer.release("1", `{"list":[{"name":"a"}],"total":30}`)
	h.Start(context.Background())
	h.Wait()

	doer.release("2", `{"list":[{"name":"b"}],"total":30}`)
	in.page.Set(2)
	h.Wait()

	view, ok := h.View()
	require.True(t, ok)
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, []item{{"b"}}, view.Items)

	// Setting an equal value does not fetch again
	in.page.Set(2)
	h.Wait()
	assert.Equal(t, 2, doer.callCount())
}

func TestPaginatedDiscardsStaleResult(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()
	h := NewPaginated[item](doer, in.definition(), WithCache(0, 0))
	defer h.Close()

	var (
		mu    sync.Mutex
		pages []int
	)
	h.Subscribe(func(s State[item]) {
		if s.View != nil {
			mu.Lock()
			pages = append(pages, s.View.Page)
			mu.Unlock()
		}
	})

	// K1 pending
	h.Start(context.Background())
	assert.Equal(t, StatusLoading, h.Status())

	// K2 becomes current before K1 resolves
	in.page.Set(2)
	assert.Equal(t, CacheKey("items:2:10:"), h.Key())

	doer.release("1", `{"list":[{"name":"stale"}],"total":20}`)
	doer.release("2", `{"list":[{"name":"fresh"}],"total":20}`)
	h.Wait()

	view, ok := h.View()
	require.True(t, ok)
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, []item{{"fresh"}}, view.Items)

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, pages, 1, "the K1 result must never be applied")
}

func TestPaginatedErrorKeepsPreviousView(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()
	h := NewPaginated[item](doer, in.definition(), WithCache(0, 0))
	defer h.Close()

	doer.release("1", `{"list":[{"name":"a"}],"total":15}`)
	h.Start(context.Background())
	h.Wait()

	boom := &apiclient.RemoteError{Code: 500, StatusMessage: "boom"}
	doer.fail("2", boom)
	in.page.Set(2)
	h.Wait()

	assert.Equal(t, StatusError, h.Status())
	require.Error(t, h.Err())
	assert.Equal(t, "boom", h.Err().Error())
	assert.True(t, errors.Is(h.Err(), boom))

	// The page 1 view is still shown
	assert.Equal(t, []item{{"a"}}, h.Items())
	assert.Equal(t, 15, h.Total())
	assert.Equal(t, 2, h.TotalPages())

	// A later success clears the error
	doer.release("2", `{"list":[{"name":"b"}],"total":15}`)
	h.Refresh(context.Background())
	assert.Equal(t, StatusSuccess, h.Status())
	assert.NoError(t, h.Err())
	assert.Equal(t, []item{{"b"}}, h.Items())
}

func TestPaginatedCache(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	h := NewPaginated[item](doer, in.definition(), WithCache(8, time.Minute), withClock(clock))
	defer h.Close()

	doer.release("1", `{"list":[{"name":"a"}],"total":30}`)
	h.Start(context.Background())
	h.Wait()

	doer.release("2", `{"list":[{"name":"b"}],"total":30}`)
	in.page.Set(2)
	h.Wait()

	// Back to page 1 within the TTL: served from cache
	in.page.Set(1)
	h.Wait()
	assert.Equal(t, 2, doer.callCount())
	assert.Equal(t, StatusSuccess, h.Status())
	assert.Equal(t, []item{{"a"}}, h.Items())

	// Refresh always goes to the network
	doer.release("1", `{"list":[{"name":"a2"}],"total":30}`)
	h.Refresh(context.Background())
	assert.Equal(t, 3, doer.callCount())
	assert.Equal(t, []item{{"a2"}}, h.Items())

	// After the TTL the cached page 2 is fetched again
	now = now.Add(2 * time.Minute)
	doer.release("2", `{"list":[{"name":"b2"}],"total":30}`)
	in.page.Set(2)
	h.Wait()
	assert.Equal(t, 4, doer.callCount())
	assert.Equal(t, []item{{"b2"}}, h.Items())
}

func TestPaginatedDeferred(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()
	h := NewPaginated[item](doer, in.definition(), Deferred(), WithCache(0, 0))
	defer h.Close()

	h.Start(context.Background())
	h.Wait()
	assert.Equal(t, 0, doer.callCount())
	assert.Equal(t, StatusIdle, h.Status())

	doer.release("1", `{"list":[],"total":0}`)
	h.Refresh(context.Background())
	assert.Equal(t, 1, doer.callCount())
	assert.Equal(t, StatusSuccess, h.Status())
	assert.Equal(t, 1, h.TotalPages())
}

func TestPaginatedClose(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()
	h := NewPaginated[item](doer, in.definition(), WithCache(0, 0))

	doer.release("1", `{"list":[{"name":"a"}],"total":1}`)
	h.Start(context.Background())
	h.Wait()

	h.Close()
	in.query.Set("changed")
	h.Wait()

	assert.Equal(t, 1, doer.callCount())
	assert.Equal(t, CacheKey("items:1:10:"), h.Key())
}

func TestPaginatedSubscribersSeeStatesInOrder(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()
	h := NewPaginated[item](doer, in.definition(), WithCache(0, 0))
	defer h.Close()

	entered := make(chan struct{})
	unblock := make(chan struct{})

	var (
		mu   sync.Mutex
		seen []State[item]
	)
	h.Subscribe(func(s State[item]) {
		// Hold up delivery of the page 1 result
		if s.Key == "items:1:10:" && s.Status == StatusSuccess {
			close(entered)
			<-unblock
		}
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	doer.release("1", `{"list":[{"name":"a"}],"total":30}`)
	h.Start(context.Background())
	<-entered

	// Page 2 starts loading while page 1's result is still being delivered
	in.page.Set(2)
	close(unblock)
	h.changes.Wait()

	mu.Lock()
	require.Len(t, seen, 3)
	assert.Equal(t, CacheKey("items:1:10:"), seen[0].Key)
	assert.Equal(t, StatusLoading, seen[0].Status)
	assert.Equal(t, StatusSuccess, seen[1].Status)
	last := seen[len(seen)-1]
	mu.Unlock()

	assert.Equal(t, h.Key(), last.Key)
	assert.Equal(t, StatusLoading, last.Status)

	doer.release("2", `{"list":[{"name":"b"}],"total":30}`)
	h.Wait()

	mu.Lock()
	defer mu.Unlock()
	last = seen[len(seen)-1]
	assert.Equal(t, CacheKey("items:2:10:"), last.Key)
	assert.Equal(t, StatusSuccess, last.Status)
}

// instantDoer answers every request at once with an empty page
type instantDoer struct{}

func (instantDoer) Do(context.Context, apiclient.Request) (json.RawMessage, error) {
	return json.RawMessage(`{"list":[],"total":100}`), nil
}

func TestPaginatedConcurrentInputChanges(t *testing.T) {
	in := newInputs()
	h := NewPaginated[item](instantDoer{}, in.definition(), WithCache(0, 0))
	defer h.Close()

	h.Start(context.Background())
	h.Wait()

	var wg sync.WaitGroup
	for i := 2; i <= 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			in.page.Set(i)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			in.size.Set(i)
		}()
	}
	wg.Wait()
	h.Wait()

	assert.Equal(t, in.definition().Query().Key("items"), h.Key())
	assert.Equal(t, StatusSuccess, h.Status())
}

func TestPaginatedRefreshAndCloseDropCache(t *testing.T) {
	doer := newGatedDoer()
	in := newInputs()
	h := NewPaginated[item](doer, in.definition(), WithCache(8, time.Minute))

	doer.release("1", `{"list":[{"name":"a"}],"total":30}`)
	h.Start(context.Background())
	h.Wait()
	assert.Equal(t, 1, h.results.Len())

	// A failed refresh leaves no cached view for the key
	doer.fail("1", errors.New("offline"))
	h.Refresh(context.Background())
	assert.Equal(t, StatusError, h.Status())
	assert.Equal(t, 0, h.results.Len())
	assert.Equal(t, []item{{"a"}}, h.Items())

	doer.release("1", `{"list":[{"name":"a2"}],"total":30}`)
	h.Refresh(context.Background())
	assert.Equal(t, 1, h.results.Len())

	h.Close()
	assert.Equal(t, 0, h.results.Len())
}
