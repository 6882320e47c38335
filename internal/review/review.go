package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
)

// Key is the storage key of the review mapping.
const Key = "reviews"

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is one user review. Author is persisted as "user".
type Review struct {
	Author string `json:"user"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// KV is the durable storage reviews are written through to.
// Implemented by store.Store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Store holds every review keyed by item id.
//
// Thread-safety: all methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	kv      KV
	logger  *slog.Logger
	reviews map[catalog.ID][]Review
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open reads the stored mapping. A mapping that cannot be decoded is
// logged and replaced by an empty one.
func Open(ctx context.Context, kv KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:      kv,
		logger:  slog.Default(),
		reviews: make(map[catalog.ID][]Review),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	if !ok {
		return s, nil
	}

	var stored map[catalog.ID][]Review
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("discarding unreadable reviews", "key", Key, "error", err)
		return s, nil
	}
	for id, list := range stored {
		if len(list) > 0 {
			s.reviews[id] = list
		}
	}
	return s, nil
}

// Submit appends a review for itemID and persists the whole mapping.
// Text must be non-blank and rating within MinRating..MaxRating. Text is
// stored as given.
func (s *Store) Submit(ctx context.Context, itemID catalog.ID, author, text string, rating int) (Review, error) {
	switch {
	case itemID == "":
		return Review{}, catalog.NewValidationError("item", "is required")
	case strings.TrimSpace(text) == "":
		return Review{}, catalog.NewValidationError("text", "is required")
	case rating < MinRating || rating > MaxRating:
		return Review{}, catalog.NewValidationError("rating",
			fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}

	r := Review{Author: author, Text: text, Rating: rating}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.reviews[itemID]
	s.reviews[itemID] = append(prev[:len(prev):len(prev)], r)

	if err := s.persistLocked(ctx); err != nil {
		if existed {
			s.reviews[itemID] = prev
		} else {
			delete(s.reviews, itemID)
		}
		return Review{}, fmt.Errorf("submit review: %w", err)
	}

	s.logger.Debug("review submitted", "item", itemID.String(), "rating", rating)
	return r, nil
}

// For returns the reviews of itemID in submission order. The result is
// a copy and never nil.
func (s *Store) For(itemID catalog.ID) []Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.reviews[itemID]
	out := make([]Review, len(list))
	copy(out, list)
	return out
}

// Count returns the total number of stored reviews.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, list := range s.reviews {
		n += len(list)
	}
	return n
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.reviews)
	if err != nil {
		return fmt.Errorf("encode reviews: %w", err)
	}
	return s.kv.Put(ctx, Key, string(data))
}
