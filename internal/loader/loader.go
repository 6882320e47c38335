package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 24

// Source returns one page of items. An empty page signals exhaustion.
// Implemented by source.Client (production) and testutil.ScriptedSource (tests).
type Source interface {
	FetchPage(ctx context.Context, page, pageSize int) ([]catalog.Item, error)
}

// Observer receives a fresh snapshot after every state change.
type Observer func(Snapshot)

type subscription struct {
	id int
	fn Observer
}

// Loader drives paginated retrieval and merging.
//
// Thread-safety: all methods are safe for concurrent use. Concurrent
// Trigger calls never overlap requests; all but one are skipped.
type Loader struct {
	mu       sync.Mutex
	source   Source
	pageSize int
	logger   *slog.Logger

	items    []catalog.Item
	seen     map[catalog.ID]struct{}
	nextPage int
	state    State

	observers []subscription
	nextSubID int
}

// Option configures a Loader.
type Option func(*Loader)

// WithPageSize overrides the page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates an Idle loader positioned at page 1.
func New(src Source, opts ...Option) *Loader {
	l := &Loader{
		source:   src,
		pageSize: DefaultPageSize,
		logger:   slog.Default(),
		seen:     make(map[catalog.ID]struct{}),
		nextPage: 1,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Trigger requests the next page if the loader is Idle.
//
// Returns OutcomeSkipped without contacting the source when a request is
// already in flight or the catalog is exhausted. On fetch failure the
// error is logged and returned, and items and cursor are left unchanged.
func (l *Loader) Trigger(ctx context.Context) (Outcome, error) {
	l.mu.Lock()
	if l.state != StateIdle {
		state := l.state
		l.mu.Unlock()
		l.logger.Debug("trigger skipped", "state", state.String())
		return OutcomeSkipped, nil
	}
	l.state = StateLoading
	page := l.nextPage
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(snap)

	items, err := l.source.FetchPage(ctx, page, l.pageSize)

	l.mu.Lock()
	if err != nil {
		l.state = StateIdle
		snap = l.snapshotLocked()
		l.mu.Unlock()

		l.logger.Error("fetch page failed", "page", page, "error", err)
		l.notify(snap)
		return OutcomeFailed, fmt.Errorf("fetch page %d: %w", page, err)
	}

	if len(items) == 0 {
		l.state = StateExhausted
		total := len(l.items)
		snap = l.snapshotLocked()
		l.mu.Unlock()

		l.logger.Info("catalog exhausted", "page", page, "items", total)
		l.notify(snap)
		return OutcomeExhausted, nil
	}

	added := l.mergeLocked(items)
	l.nextPage++
	l.state = StateIdle
	total := len(l.items)
	snap = l.snapshotLocked()
	l.mu.Unlock()

	l.logger.Debug("page merged",
		"page", page,
		"fetched", len(items),
		"added", added,
		"items", total,
	)
	l.notify(snap)
	return OutcomeAdvanced, nil
}

// mergeLocked appends items whose ID has not been seen, in page order.
// Returns the number appended. Caller must hold l.mu.
func (l *Loader) mergeLocked(page []catalog.Item) int {
	added := 0
	for _, it := range page {
		if _, dup := l.seen[it.ID]; dup {
			continue
		}
		l.seen[it.ID] = struct{}{}
		l.items = append(l.items, it)
		added++
	}
	return added
}

// Snapshot returns a copy of the current state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// CanFetch reports whether a Trigger would issue a request right now.
func (l *Loader) CanFetch() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == StateIdle
}

// Lookup returns the loaded item with the given ID.
func (l *Loader) Lookup(id catalog.ID) (catalog.Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[id]; !ok {
		return catalog.Item{}, false
	}
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return catalog.Item{}, false
}

// Subscribe registers fn to receive snapshots after each state change.
// Observers run synchronously on the goroutine that changed the state,
// outside the loader lock. The returned func unsubscribes.
func (l *Loader) Subscribe(fn Observer) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSubID
	l.nextSubID++
	l.observers = append(l.observers, subscription{id: id, fn: fn})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, sub := range l.observers {
			if sub.id == id {
				l.observers = append(l.observers[:i:i], l.observers[i+1:]...)
				return
			}
		}
	}
}

func (l *Loader) snapshotLocked() Snapshot {
	items := make([]catalog.Item, len(l.items))
	copy(items, l.items)
	return Snapshot{
		Items:    items,
		NextPage: l.nextPage,
		Loading:  l.state == StateLoading,
		HasMore:  l.state != StateExhausted,
		State:    l.state,
	}
}

func (l *Loader) notify(snap Snapshot) {
	l.mu.Lock()
	subs := make([]subscription, len(l.observers))
	copy(subs, l.observers)
	l.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}
