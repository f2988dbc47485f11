// Package livesync keeps aggregation snapshots current as records change.
// Each View subscribes to the store collections it reads and recomputes on a
// single loop goroutine, so at most one recompute runs at a time. Changes
// arriving mid-recompute coalesce into one pending signal: a burst of writes
// costs at most one extra recompute.
package livesync

import (
	"context"
	"sync"

	"github.com/portworks/craneview/internal/store"
)

// FetchFunc loads and aggregates a fresh snapshot from the store.
type FetchFunc func(ctx context.Context) (any, error)

// View maintains one live aggregation snapshot. Snapshots are immutable
// values swapped in whole; readers never observe a partial recompute.
type View struct {
	name  string
	fetch FetchFunc
	subs  []*store.Subscription

	dirty   chan struct{}
	watch   *store.Notifier
	wg      sync.WaitGroup
	closing sync.Once

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	closed    bool

	mu       sync.RWMutex
	snapshot any
	version  uint64
	lastErr  error
}

// New creates a View over the given collections. The view recomputes via
// fetch whenever any of those collections changes. Call Start to begin.
func New(name string, st *store.Store, collections []store.Collection, fetch FetchFunc) *View {
	v := &View{
		name:  name,
		fetch: fetch,
		dirty: make(chan struct{}, 1),
		watch: store.NewNotifier(),
	}
	for _, c := range collections {
		v.subs = append(v.subs, st.Subscribe(c))
	}
	return v
}

// Name returns the view's name.
func (v *View) Name() string { return v.name }

// Start computes the initial snapshot and begins reacting to store changes.
// The view stops when ctx is cancelled or Close is called. Starting a view
// that is already closed is a no-op.
func (v *View) Start(ctx context.Context) {
	v.lifecycle.Lock()
	defer v.lifecycle.Unlock()
	if v.closed {
		return
	}
	ctx, v.cancel = context.WithCancel(ctx)

	for _, sub := range v.subs {
		v.wg.Add(1)
		go func(sub *store.Subscription) {
			defer v.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-sub.C():
					if !ok {
						return
					}
					select {
					case v.dirty <- struct{}{}:
					default:
					}
				}
			}
		}(sub)
	}

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		v.recompute(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-v.dirty:
				v.recompute(ctx)
			}
		}
	}()
}

// recompute fetches a fresh snapshot and publishes it atomically. A result
// arriving after cancellation is discarded, never published.
func (v *View) recompute(ctx context.Context) {
	snap, err := v.fetch(ctx)
	if ctx.Err() != nil {
		return
	}

	v.mu.Lock()
	if err != nil {
		v.lastErr = err
		v.mu.Unlock()
		return
	}
	v.snapshot = snap
	v.lastErr = nil
	v.version++
	v.mu.Unlock()

	v.watch.Publish(store.Collection(v.name))
}

// Snapshot returns the current published snapshot, or nil before the first
// successful recompute.
func (v *View) Snapshot() any {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot
}

// Version counts successful recomputes since Start.
func (v *View) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

// Err returns the error from the most recent recompute, nil on success. A
// failed recompute keeps the previous snapshot in place.
func (v *View) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastErr
}

// Watch returns a subscription signalled after each published snapshot.
// Signals coalesce the same way store subscriptions do.
func (v *View) Watch() *store.Subscription {
	return v.watch.Subscribe(store.Collection(v.name))
}

// Close stops the view, releases its store subscriptions, and waits for its
// goroutines to exit. Safe to call more than once, and safe against a Start
// racing it: whichever acquires the lifecycle lock second observes the other.
func (v *View) Close() {
	v.closing.Do(func() {
		v.lifecycle.Lock()
		v.closed = true
		cancel := v.cancel
		v.lifecycle.Unlock()

		if cancel != nil {
			cancel()
		}
		for _, sub := range v.subs {
			sub.Unsubscribe()
		}
		v.wg.Wait()
	})
}

// Registry holds the named views of a running process so they can be started
// and torn down together.
type Registry struct {
	mu    sync.Mutex
	order []string
	views map[string]*View
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string]*View)}
}

// Register adds a view. Registering the same name twice replaces the entry.
func (r *Registry) Register(v *View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[v.name]; !ok {
		r.order = append(r.order, v.name)
	}
	r.views[v.name] = v
}

// Get returns the view registered under name, or nil.
func (r *Registry) Get(name string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[name]
}

// Start starts every registered view.
func (r *Registry) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.order {
		r.views[name].Start(ctx)
	}
}

// Close closes every registered view.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.order {
		r.views[name].Close()
	}
}
