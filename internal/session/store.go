package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
)

// Key is the storage key of the user record.
const Key = "user"

// KV is the durable storage the session store writes through to.
// Implemented by store.Store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store manages the single user record.
//
// Thread-safety: all methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	kv     KV
	ids    IDGenerator
	logger *slog.Logger

	user *User
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the user id generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open reads the stored user, if any, and makes it the current session.
// A stored record that cannot be decoded is logged and ignored.
func Open(ctx context.Context, kv KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     kv,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return s, nil
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn("discarding unreadable user record", "key", Key, "error", err)
		return s, nil
	}
	s.user = &u
	return s, nil
}

// Register replaces the stored user with a new record and signs it in.
// Email, password and username are required, checked in that order.
func (s *Store) Register(ctx context.Context, r Registration) (User, error) {
	email := strings.TrimSpace(r.Email)
	username := strings.TrimSpace(r.Username)
	switch {
	case email == "":
		return User{}, catalog.NewValidationError("email", "is required")
	case r.Password == "":
		return User{}, catalog.NewValidationError("password", "is required")
	case username == "":
		return User{}, catalog.NewValidationError("username", "is required")
	}

	u := User{
		ID:        s.ids.Generate(),
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     strings.TrimSpace(r.Phone),
	}
	data, err := json.Marshal(u)
	if err != nil {
		return User{}, fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Put(ctx, Key, string(data)); err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	s.user = &u
	s.logger.Info("user registered", "id", u.ID)
	return u, nil
}

// Login signs in the stored user when the email matches exactly.
// The password must be present but is not compared.
func (s *Store) Login(ctx context.Context, c Credentials) (User, error) {
	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		return User{}, catalog.NewValidationError("email", "is required")
	case c.Password == "":
		return User{}, catalog.NewValidationError("password", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return User{}, ErrNoAccount
	}
	if s.user.Email != email {
		return User{}, ErrInvalidCredentials
	}
	s.logger.Debug("user signed in", "id", s.user.ID)
	return *s.user, nil
}

// Logout deletes the stored user and clears the session. Calling it with
// nobody signed in is a no-op apart from the delete.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.user = nil
	return nil
}

// Current returns the signed-in user.
func (s *Store) Current() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}
