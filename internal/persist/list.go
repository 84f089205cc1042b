// Package persist keeps an ordered, identity-keyed list in memory and mirrors
// it to a key-value store as a JSON array.
//
// Mutations apply to memory synchronously and notify observers before
// returning. The write to storage happens on a background goroutine that
// always writes the latest full list, so the durable value follows the last
// mutation. Storage errors are logged and never returned to the caller.
package persist

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/faideww/fishing-journal/internal/kv"
)

type Option func(*options)

type options struct {
	log *zap.Logger
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

type List[T any] struct {
	kv       kv.Store
	key      string
	identity func(T) string
	log      *zap.Logger

	mu      sync.Mutex
	items   []T
	ready   bool
	dirty   bool
	subs    map[int]func([]T)
	nextSub int
	seq     uint64

	// notifyMu orders deliveries; it is never held while taking mu.
	notifyMu  sync.Mutex
	delivered uint64

	initOnce  sync.Once
	closeOnce sync.Once
	readyCh   chan struct{}
	wake      chan struct{}
	done      chan struct{}
	exited    chan struct{}
}

func New[T any](store kv.Store, key string, identity func(T) string, opts ...Option) *List[T] {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &List[T]{
		kv:       store,
		key:      key,
		identity: identity,
		log:      o.log.With(zap.String("key", key)),
		items:    []T{},
		subs:     make(map[int]func([]T)),
		readyCh:  make(chan struct{}),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Initialize starts the one-time load from storage and returns immediately.
// Ready is closed once the load has finished, whether or not it succeeded.
func (l *List[T]) Initialize(ctx context.Context) {
	l.initOnce.Do(func() {
		go l.run(ctx)
	})
}

func (l *List[T]) Ready() <-chan struct{} { return l.readyCh }

// Items returns a copy of the list, newest first.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

func (l *List[T]) Contains(id string) bool {
	_, ok := l.Find(id)
	return ok
}

func (l *List[T]) Find(id string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.items {
		if l.identity(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Toggle removes the item with the same identity if present, otherwise
// prepends it. It reports whether the item is in the list afterwards.
func (l *List[T]) Toggle(item T) bool {
	id := l.identity(item)
	var added bool
	l.mutate(func(cur []T) []T {
		if slices.ContainsFunc(cur, func(it T) bool { return l.identity(it) == id }) {
			return l.without(cur, id)
		}
		added = true
		return prepend(cur, item)
	})
	return added
}

func (l *List[T]) Prepend(item T) {
	l.mutate(func(cur []T) []T { return prepend(cur, item) })
}

// Remove drops every item whose identity equals id. Removing an unknown id
// leaves the list unchanged but still schedules a write.
func (l *List[T]) Remove(id string) {
	l.mutate(func(cur []T) []T { return l.without(cur, id) })
}

// Subscribe registers fn to be called with a copy of the list after a
// change. Deliveries never go backwards: when mutations race, an older
// snapshot arriving after a newer one is dropped, so the last call always
// carries the current list. fn may read the list but must not mutate it.
// The returned func unregisters it.
func (l *List[T]) Subscribe(fn func([]T)) (cancel func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// Close flushes a pending write and stops the background goroutine. It
// returns ctx.Err() if ctx ends first. Mutations after Close stay in memory.
func (l *List[T]) Close(ctx context.Context) error {
	l.closeOnce.Do(func() { close(l.done) })

	l.initOnce.Do(func() {
		// never initialized: nothing to flush
		close(l.exited)
	})
	select {
	case <-l.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// mutate swaps in a new slice built by fn; slices already handed to the
// writer or to observers are never modified in place.
func (l *List[T]) mutate(fn func(cur []T) []T) {
	l.mu.Lock()
	l.items = fn(l.items)
	snapshot := l.items
	subs, seq := l.observers()
	persist := l.ready
	if persist {
		l.dirty = true
	}
	l.mu.Unlock()

	if persist {
		select {
		case l.wake <- struct{}{}:
		default:
		}
	} else {
		l.log.Debug("list not ready, mutation kept in memory only")
	}

	l.notify(subs, seq, snapshot)
}

func (l *List[T]) run(ctx context.Context) {
	defer close(l.exited)

	stored, found := l.load(ctx)

	l.mu.Lock()
	if found {
		l.items = stored
	} else if len(l.items) > 0 {
		// Nothing usable was stored, so the early in-memory mutations
		// stand. Only write them back when the key is known to be absent.
		l.dirty = stored != nil
	}
	l.ready = true
	items := l.items
	dirty := l.dirty
	subs, seq := l.observers()
	l.mu.Unlock()
	close(l.readyCh)
	l.notify(subs, seq, items)
	if dirty {
		select {
		case l.wake <- struct{}{}:
		default:
		}
	}

	// writes are not cancellable once issued
	wctx := context.WithoutCancel(ctx)
	for {
		select {
		case <-l.wake:
			l.flush(wctx)
		case <-l.done:
			l.flush(wctx)
			return
		}
	}
}

// load reports found only when storage held a list that decoded. A nil
// result with found false means the read failed or the value was malformed;
// an empty non-nil result with found false means the key is absent.
func (l *List[T]) load(ctx context.Context) (items []T, found bool) {
	raw, ok, err := l.kv.Get(ctx, l.key)
	if err != nil {
		l.log.Warn("failed to load list", zap.Error(err))
		return nil, false
	}
	if !ok || raw == "" {
		return []T{}, false
	}

	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		l.log.Warn("discarding malformed stored list", zap.Error(err))
		return nil, false
	}
	if items == nil {
		items = []T{}
	}
	l.log.Debug("list loaded", zap.Int("count", len(items)))
	return items, true
}

func (l *List[T]) flush(ctx context.Context) {
	l.mu.Lock()
	if !l.dirty {
		l.mu.Unlock()
		return
	}
	l.dirty = false
	snapshot := l.items
	l.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		l.log.Warn("failed to encode list", zap.Error(err))
		return
	}
	if err := l.kv.Set(ctx, l.key, string(raw)); err != nil {
		l.log.Warn("failed to persist list", zap.Error(err))
		return
	}
	l.log.Debug("list persisted", zap.Int("count", len(snapshot)))
}

// observers must be called with l.mu held. It also stamps the change with
// a sequence number for notify.
func (l *List[T]) observers() ([]func([]T), uint64) {
	l.seq++
	if len(l.subs) == 0 {
		return nil, l.seq
	}
	out := make([]func([]T), 0, len(l.subs))
	for _, fn := range l.subs {
		out = append(out, fn)
	}
	return out, l.seq
}

func (l *List[T]) notify(subs []func([]T), seq uint64, items []T) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()
	if seq <= l.delivered {
		return
	}
	l.delivered = seq
	for _, fn := range subs {
		fn(slices.Clone(items))
	}
}

func (l *List[T]) without(cur []T, id string) []T {
	out := make([]T, 0, len(cur))
	for _, it := range cur {
		if l.identity(it) != id {
			out = append(out, it)
		}
	}
	return out
}

func prepend[T any](cur []T, item T) []T {
	out := make([]T, 0, len(cur)+1)
	out = append(out, item)
	return append(out, cur...)
}

