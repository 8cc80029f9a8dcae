package search

import (
	"context"

	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/filter"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	List(ctx context.Context, f filter.Filter) ([]domain.Organization, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
