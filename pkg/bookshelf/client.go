package bookshelf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/bookshelf/internal/db"
	dbRedis "github.com/kailas-cloud/bookshelf/internal/db/redis"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
	bookrepo "github.com/kailas-cloud/bookshelf/internal/repository/book"
	searchrepo "github.com/kailas-cloud/bookshelf/internal/repository/search"
	bookuc "github.com/kailas-cloud/bookshelf/internal/usecase/book"
	healthuc "github.com/kailas-cloud/bookshelf/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bookshelf/internal/usecase/search"
)

// Internal interfaces, swapped out in tests.
type bookUseCase interface {
	Add(ctx context.Context, b dombook.Book) (string, error)
	Get(ctx context.Context, id string) (dombook.Book, error)
	Delete(ctx context.Context, id string) (dombook.Result, error)
	Update(ctx context.Context, id string, p patch.Patch) (dombook.Result, error)
}

type searchUseCase interface {
	Query(ctx context.Context, p searchuc.Params) ([]dombook.Book, error)
}

type indexManager interface {
	EnsureIndex(ctx context.Context) (bool, error)
	DropIndex(ctx context.Context) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the bookshelf SDK entry point.
type Client struct {
	store     db.Store
	bookSvc   bookUseCase
	searchSvc searchUseCase
	index     indexManager
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and waits for Redis to answer.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("bookshelf: database address required (use WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("bookshelf: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("bookshelf: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	books := bookrepo.New(store, cfg.keyspace)
	search := searchrepo.New(store, cfg.keyspace)

	return &Client{
		store:     store,
		bookSvc:   bookuc.New(books),
		searchSvc: searchuc.New(search),
		index:     books,
		healthSvc: healthuc.New(store, books),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the search index if it is missing.
// Returns true when this call created it.
func (c *Client) EnsureIndex(ctx context.Context) (created bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ensure_index", start, err) }()

	created, err = c.index.EnsureIndex(ctx)
	if err != nil {
		return false, fmt.Errorf("ensure index: %w", err)
	}
	return created, nil
}

// DropIndex removes the search index. Stored books are kept.
func (c *Client) DropIndex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("drop_index", start, err) }()

	if err = c.index.DropIndex(ctx); err != nil {
		return fmt.Errorf("drop index: %w", err)
	}
	return nil
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
