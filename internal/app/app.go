// Package app wires the catalog loader, the scroll monitor and the local
// session and review stores into one value the CLI drives.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
	"github.com/KovyD20/Video-games-database-project/internal/config"
	"github.com/KovyD20/Video-games-database-project/internal/loader"
	"github.com/KovyD20/Video-games-database-project/internal/review"
	"github.com/KovyD20/Video-games-database-project/internal/scroll"
	"github.com/KovyD20/Video-games-database-project/internal/session"
	"github.com/KovyD20/Video-games-database-project/internal/source"
	"github.com/KovyD20/Video-games-database-project/internal/store"
)

// ErrNotSignedIn is returned by SubmitReview when no user is signed in.
var ErrNotSignedIn = errors.New("sign in to post a review")

// App bundles the stores, loader and monitor built from a Config.
type App struct {
	Config   config.Config
	DB       *store.Store
	Loader   *loader.Loader
	Scroll   *scroll.Monitor
	Sessions *session.Store
	Reviews  *review.Store

	logger *slog.Logger
}

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	ids        session.IDGenerator
	source     loader.Source
}

// Option configures New.
type Option func(*options)

// WithHTTPClient sets the client used for catalog requests. Default: a
// client with cfg.HTTPTimeout.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.httpClient = h }
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithIDGenerator sets the user id generator.
func WithIDGenerator(g session.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithSource replaces the remote catalog client.
func WithSource(src loader.Source) Option {
	return func(o *options) { o.source = src }
}

// New validates cfg, opens the database and builds every component.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout, _ := cfg.Timeout()
	interval, _ := cfg.ScrollInterval()

	src := o.source
	if src == nil {
		httpClient := o.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: timeout}
		}
		src = source.New(cfg.BaseURL, cfg.APIKey,
			source.WithHTTPClient(httpClient),
			source.WithLogger(o.logger),
		)
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Database, err)
	}

	sessionOpts := []session.Option{session.WithLogger(o.logger)}
	if o.ids != nil {
		sessionOpts = append(sessionOpts, session.WithIDGenerator(o.ids))
	}
	sessions, err := session.Open(ctx, db, sessionOpts...)
	if err != nil {
		db.Close()
		return nil, err
	}

	reviews, err := review.Open(ctx, db, review.WithLogger(o.logger))
	if err != nil {
		db.Close()
		return nil, err
	}

	l := loader.New(src, loader.WithLogger(o.logger))
	monitor := scroll.New(l,
		scroll.WithThreshold(cfg.ScrollThreshold),
		scroll.WithRateLimit(interval),
		scroll.WithLogger(o.logger),
	)

	return &App{
		Config:   cfg,
		DB:       db,
		Loader:   l,
		Scroll:   monitor,
		Sessions: sessions,
		Reviews:  reviews,
		logger:   o.logger,
	}, nil
}

// Close closes the database.
func (a *App) Close() error {
	return a.DB.Close()
}

// Reading-list geometry used to place synthetic viewports: one card per
// row, and a window tall enough to show a few of them.
const (
	cardHeight     = 320
	viewportHeight = 900
)

// ScrollPages scrolls to the end of the list until n pages have been
// requested or the catalog is exhausted. Each step hands the scroll monitor
// a viewport resting on the last loaded item, so the threshold and rate
// limit apply as they would to a reader. It returns the first fetch error.
func (a *App) ScrollPages(ctx context.Context, n int) error {
	interval, _ := a.Config.ScrollInterval()

	for fetched := 0; fetched < n && a.Loader.CanFetch(); {
		triggered, err := a.Scroll.Observe(ctx, bottomViewport(a.Loader.Snapshot()))
		if err != nil {
			return err
		}
		if triggered {
			fetched++
			continue
		}
		if interval <= 0 {
			return nil
		}

		a.logger.Debug("waiting for scroll rate limit", "interval", interval)
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// bottomViewport is the viewport of a reader scrolled to the last card.
func bottomViewport(snap loader.Snapshot) scroll.Viewport {
	doc := float64(len(snap.Items) * cardHeight)
	return scroll.Viewport{
		InnerHeight:    viewportHeight,
		ScrollY:        max(0, doc-viewportHeight),
		DocumentHeight: doc,
	}
}

// Status summarizes what the local database holds.
type Status struct {
	Database  string
	Keys      []string
	LastWrite string
	User      *session.User
	Reviews   int
}

// Status reads the stored keys and the in-memory session and review state.
func (a *App) Status(ctx context.Context) (Status, error) {
	keys, err := a.DB.Keys(ctx)
	if err != nil {
		return Status{}, err
	}
	latest, _, err := a.DB.Latest(ctx)
	if err != nil {
		return Status{}, err
	}

	st := Status{
		Database:  a.Config.Database,
		Keys:      keys,
		LastWrite: latest,
		Reviews:   a.Reviews.Count(),
	}
	if u, ok := a.Sessions.Current(); ok {
		st.User = &u
	}
	return st, nil
}

// FindItem returns the item with id, loading up to maxPages further pages
// while it has not been seen.
func (a *App) FindItem(ctx context.Context, id catalog.ID, maxPages int) (catalog.Item, bool, error) {
	for i := 0; ; i++ {
		if it, ok := a.Loader.Lookup(id); ok {
			return it, true, nil
		}
		if i >= maxPages || !a.Loader.CanFetch() {
			return catalog.Item{}, false, nil
		}
		if _, err := a.Loader.Trigger(ctx); err != nil {
			return catalog.Item{}, false, err
		}
	}
}

// SubmitReview posts a review for itemID as the signed-in user.
func (a *App) SubmitReview(ctx context.Context, itemID catalog.ID, text string, rating int) (review.Review, error) {
	u, ok := a.Sessions.Current()
	if !ok {
		return review.Review{}, ErrNotSignedIn
	}
	return a.Reviews.Submit(ctx, itemID, u.DisplayName(), text, rating)
}
