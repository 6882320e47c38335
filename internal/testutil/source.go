package testutil

import (
	"context"
	"strconv"
	"sync"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
)

// Call records one FetchPage invocation.
type Call struct {
	Page     int
	PageSize int
}

// ScriptedSource is an in-memory catalog source with scripted pages.
//
// Pages that were never set come back empty, which a loader reads as
// exhaustion. Failures queued with FailPage are returned first, one per
// call, before the page's items are served.
//
// Thread-safety: all methods are safe for concurrent use.
type ScriptedSource struct {
	mu      sync.Mutex
	pages   map[int][]catalog.Item
	fails   map[int][]error
	calls   []Call
	hold    chan struct{}
	entered chan int
}

// NewScriptedSource creates a source with no pages.
func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{
		pages: make(map[int][]catalog.Item),
		fails: make(map[int][]error),
	}
}

// SetPage sets the items served for page.
func (s *ScriptedSource) SetPage(page int, items []catalog.Item) *ScriptedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]catalog.Item, len(items))
	copy(cp, items)
	s.pages[page] = cp
	return s
}

// FailPage queues err to be returned by the next request for page.
func (s *ScriptedSource) FailPage(page int, err error) *ScriptedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[page] = append(s.fails[page], err)
	return s
}

// Hold makes subsequent FetchPage calls block until release is called.
// entered receives the page number of every call that starts blocking.
func (s *ScriptedSource) Hold() (release func(), entered <-chan int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold := make(chan struct{})
	s.hold = hold
	s.entered = make(chan int, 16)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.hold = nil
			s.mu.Unlock()
			close(hold)
		})
	}, s.entered
}

// FetchPage implements loader.Source.
func (s *ScriptedSource) FetchPage(ctx context.Context, page, pageSize int) ([]catalog.Item, error) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Page: page, PageSize: pageSize})
	hold, entered := s.hold, s.entered
	s.mu.Unlock()

	if hold != nil {
		select {
		case entered <- page:
		default:
		}
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if queued := s.fails[page]; len(queued) > 0 {
		s.fails[page] = queued[1:]
		return nil, queued[0]
	}

	items := s.pages[page]
	out := make([]catalog.Item, len(items))
	copy(out, items)
	return out, nil
}

// Calls returns every recorded call in order.
func (s *ScriptedSource) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns the number of FetchPage calls so far.
func (s *ScriptedSource) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Items builds items with the given numeric ids, named "Game <id>".
func Items(ids ...int) []catalog.Item {
	out := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		s := strconv.Itoa(id)
		out = append(out, catalog.Item{ID: catalog.ID(s), Name: "Game " + s})
	}
	return out
}

// ItemRange builds items with ids from..to inclusive.
func ItemRange(from, to int) []catalog.Item {
	ids := make([]int, 0, to-from+1)
	for id := from; id <= to; id++ {
		ids = append(ids, id)
	}
	return Items(ids...)
}

// IDs returns the ids of items as strings, in order.
func IDs(items []catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID.String())
	}
	return out
}
