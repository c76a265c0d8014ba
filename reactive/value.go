// Package reactive provides explicit observable values. A hook subscribes to
// a fixed list of inputs and is told when any of them changes; there is no
// implicit dependency tracking.
package reactive

import "sync"

// Input is a change stream that can be observed without knowing its type.
type Input interface {
	// OnChange registers fn to run after every change.
	// The returned function removes the registration.
	OnChange(fn func()) (cancel func())
}

type subscription[T any] struct {
	fn func(T)
}

// observers is the subscriber list shared by Value and Ordered
type observers[T any] struct {
	mu   sync.Mutex
	subs []*subscription[T]
}

func (o *observers[T]) add(fn func(T)) func() {
	s := &subscription[T]{fn: fn}

	o.mu.Lock()
	o.subs = append(o.subs, s)
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, cur := range o.subs {
				if cur == s {
					o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// notify calls every subscriber in registration order. The list is copied
// so subscribers may (un)subscribe while being notified.
func (o *observers[T]) notify(v T) {
	o.mu.Lock()
	subs := make([]*subscription[T], len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Value holds a comparable value and notifies subscribers when Set changes it.
// Setting an equal value is a no-op.
type Value[T comparable] struct {
	mu  sync.RWMutex
	val T
	obs observers[T]
}

// NewValue creates a Value holding v
func NewValue[T comparable](v T) *Value[T] {
	return &Value[T]{val: v}
}

// Get returns the current value
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

// Set stores next and reports whether the value changed.
// Subscribers run synchronously, after the value is stored.
func (v *Value[T]) Set(next T) bool {
	v.mu.Lock()
	if v.val == next {
		v.mu.Unlock()
		return false
	}
	v.val = next
	v.mu.Unlock()

	v.obs.notify(next)
	return true
}

// Update applies fn to the current value and stores the result
func (v *Value[T]) Update(fn func(T) T) bool {
	return v.Set(fn(v.Get()))
}

// Subscribe registers fn to receive every new value
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	return v.obs.add(fn)
}

// OnChange implements Input
func (v *Value[T]) OnChange(fn func()) (cancel func()) {
	return v.obs.add(func(T) { fn() })
}

// Ordered delivers values to subscribers one at a time, in the order they
// were pushed, whichever goroutine pushed them. Push is cheap and may be
// called while holding the lock that orders the values; Deliver must be
// called afterwards without it. A subscriber may push from its callback,
// its value is delivered once the callback returns.
type Ordered[T any] struct {
	obs observers[T]

	mu       sync.Mutex
	idle     *sync.Cond
	queue    []T
	draining bool
}

// Push queues v for delivery
func (o *Ordered[T]) Push(v T) {
	o.mu.Lock()
	o.queue = append(o.queue, v)
	o.mu.Unlock()
}

// Deliver sends queued values until the queue is empty. If another
// goroutine is already delivering it returns at once and that goroutine
// sends the values.
func (o *Ordered[T]) Deliver() {
	o.mu.Lock()
	if o.draining {
		o.mu.Unlock()
		return
	}
	o.draining = true
	for len(o.queue) > 0 {
		v := o.queue[0]
		var zero T
		o.queue[0] = zero
		o.queue = o.queue[1:]
		o.mu.Unlock()

		o.obs.notify(v)

		o.mu.Lock()
	}
	o.draining = false
	o.cond().Broadcast()
	o.mu.Unlock()
}

// Wait blocks until every pushed value has been delivered. It must not be
// called from a subscriber.
func (o *Ordered[T]) Wait() {
	o.mu.Lock()
	for o.draining || len(o.queue) > 0 {
		o.cond().Wait()
	}
	o.mu.Unlock()
}

// Subscribe registers fn to receive every delivered value
func (o *Ordered[T]) Subscribe(fn func(T)) (cancel func()) {
	return o.obs.add(fn)
}

// cond is created on first use so the zero Ordered is ready. Callers hold o.mu.
func (o *Ordered[T]) cond() *sync.Cond {
	if o.idle == nil {
		o.idle = sync.NewCond(&o.mu)
	}
	return o.idle
}
