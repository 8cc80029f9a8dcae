// Package orgdex embeds the organization search engine in another Go
// process, sharing storage layout and ranking behavior with the HTTP
// service.
package orgdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/givesearch/orgdex/internal/db"
	dbRedis "github.com/givesearch/orgdex/internal/db/redis"
	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/repository/embcache"
	organizationrepo "github.com/givesearch/orgdex/internal/repository/organization"
	localEmb "github.com/givesearch/orgdex/internal/transport/local"
	embeddinguc "github.com/givesearch/orgdex/internal/usecase/embedding"
	indexuc "github.com/givesearch/orgdex/internal/usecase/index"
	searchuc "github.com/givesearch/orgdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the orgdex SDK entry point.
type Client struct {
	store      db.Store
	orgs       *organizationrepo.Repo
	searchSvc  *searchuc.Service
	refreshSvc *indexuc.Service
}

// New creates an orgdex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		dimensions: domain.DefaultDimensions,
		params:     searchuc.DefaultParams(),
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("orgdex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("orgdex: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("orgdex: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	orgRepo := organizationrepo.New(store, cfg.dimensions)

	// Embedder chain: provider -> cache -> degrading wrapper. The refresh
	// path keeps the raw cached embedder so provider failures stay
	// countable per item.
	var provider domain.Embedder
	if cfg.embedder != nil {
		provider = &embedderAdapter{inner: cfg.embedder}
	} else {
		provider = localEmb.NewEmbedder(cfg.dimensions)
	}
	cached := embcache.New(provider, store, nil, cfg.logger)
	resilient := embeddinguc.NewResilient(cached, cfg.dimensions, cfg.logger)

	refreshSvc := indexuc.New(orgRepo, cached, cfg.logger)
	if cfg.refreshPoolSize > 0 {
		refreshSvc = refreshSvc.WithPoolSize(cfg.refreshPoolSize)
	}

	return &Client{
		store:      store,
		orgs:       orgRepo,
		searchSvc:  searchuc.New(orgRepo, resilient, cfg.params, cfg.logger),
		refreshSvc: refreshSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
