// Package index recomputes searchable text and embeddings for stored
// organizations. Refresh is the only code path that writes vectors; search
// never does so implicitly.
package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/metrics"
	"github.com/givesearch/orgdex/internal/taxonomy"
)

// Refresh defaults.
const (
	DefaultPoolSize   = 4
	DefaultBatchLimit = 256
)

// Stats summarizes a refresh run. Items are independent: one failure never
// aborts the rest of the batch.
type Stats struct {
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// Service refreshes organization embeddings with bounded concurrency.
type Service struct {
	repo       Repository
	embed      Embedder
	poolSize   int
	batchLimit int
	logger     *zap.Logger
}

// New creates a refresh service.
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		embed:      embed,
		poolSize:   DefaultPoolSize,
		batchLimit: DefaultBatchLimit,
		logger:     logger,
	}
}

// WithPoolSize configures the worker pool size.
func (s *Service) WithPoolSize(size int) *Service {
	if size > 0 {
		s.poolSize = size
	}
	return s
}

// WithBatchLimit configures how many organizations a no-argument refresh
// pulls from the missing-embedding backlog.
func (s *Service) WithBatchLimit(limit int) *Service {
	if limit > 0 {
		s.batchLimit = limit
	}
	return s
}

type item struct {
	ein int64
	org domain.Organization
	err error
}

// Refresh recomputes searchable text and embeddings for the given
// organizations, or for the missing-embedding backlog when eins is empty.
// Returns per-batch counts; individual failures are logged and counted,
// never propagated.
func (s *Service) Refresh(ctx context.Context, eins []int64) (Stats, error) {
	items, err := s.load(ctx, eins)
	if err != nil {
		return Stats{}, err
	}
	if len(items) == 0 {
		return Stats{}, nil
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return Stats{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range items {
		if items[i].err != nil {
			continue
		}
		it := &items[i]
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			it.err = s.refreshOne(ctx, &it.org)
		}); submitErr != nil {
			wg.Done()
			it.err = fmt.Errorf("submit refresh task: %w", submitErr)
		}
	}
	wg.Wait()

	var st Stats
	for i := range items {
		if items[i].err != nil {
			st.Errors++
			metrics.EmbeddingsRefreshedTotal.WithLabelValues("error").Inc()
			s.logger.Warn("Embedding refresh failed",
				zap.Int64("ein", items[i].ein),
				zap.Error(items[i].err),
			)
			continue
		}
		st.Updated++
		metrics.EmbeddingsRefreshedTotal.WithLabelValues("updated").Inc()
	}

	s.logger.Info("Embedding refresh complete",
		zap.Int("updated", st.Updated),
		zap.Int("errors", st.Errors),
	)
	return st, nil
}

// load resolves the work list. A missing organization becomes a per-item
// error, not a batch failure.
func (s *Service) load(ctx context.Context, eins []int64) ([]item, error) {
	if len(eins) == 0 {
		orgs, err := s.repo.ListMissingEmbedding(ctx, s.batchLimit)
		if err != nil {
			return nil, fmt.Errorf("list missing embeddings: %w", err)
		}
		items := make([]item, len(orgs))
		for i, org := range orgs {
			items[i] = item{ein: org.EIN, org: org}
		}
		return items, nil
	}

	items := make([]item, len(eins))
	for i, ein := range eins {
		org, err := s.repo.Get(ctx, ein)
		items[i] = item{ein: ein, org: org}
		if err != nil {
			items[i].err = fmt.Errorf("get organization: %w", err)
		}
	}
	return items, nil
}

func (s *Service) refreshOne(ctx context.Context, org *domain.Organization) error {
	text := taxonomy.BuildSearchableText(org)
	if text == "" {
		return fmt.Errorf("organization %d yields empty searchable text", org.EIN)
	}

	emb, err := s.embed.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("vectorize: %w", err)
	}

	if err := s.repo.WriteEmbedding(ctx, org.EIN, text, emb.Embedding); err != nil {
		return fmt.Errorf("write embedding: %w", err)
	}
	return nil
}
