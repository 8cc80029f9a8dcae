package index

import (
	"context"

	"github.com/givesearch/orgdex/internal/domain"
)

// Repository defines the storage contract for embedding refresh.
type Repository interface {
	Get(ctx context.Context, ein int64) (domain.Organization, error)
	ListMissingEmbedding(ctx context.Context, limit int) ([]domain.Organization, error)
	WriteEmbedding(ctx context.Context, ein int64, text string, vec []float32) error
}

// Embedder vectorizes text into embeddings. The refresh service needs real
// provider errors for per-item accounting, so it takes the raw (cached)
// embedder, not the degrading wrapper used on the search path.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
