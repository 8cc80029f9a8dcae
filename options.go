package orgdex

import (
	"context"

	"go.uber.org/zap"

	searchuc "github.com/givesearch/orgdex/internal/usecase/search"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs           []string
	password        string
	dimensions      int
	embedder        Embedder
	params          searchuc.Params
	refreshPoolSize int
	logger          *zap.Logger
}

// EmbeddingResult is an embedding with token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text. Implement this to plug in a remote embedding
// provider; without one the client uses the deterministic local embedder.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// WithRedis sets the Redis (or Valkey) connection.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedisCluster sets multiple Redis (or Valkey) addresses.
func WithRedisCluster(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	}
}

// WithDimensions sets the embedding width. Default is 384.
func WithDimensions(dim int) Option {
	return func(c *clientConfig) {
		if dim > 0 {
			c.dimensions = dim
		}
	}
}

// WithEmbedder sets a custom embedding provider.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithSemanticWeight overrides the fusion weight for semantic scores.
func WithSemanticWeight(w float64) Option {
	return func(c *clientConfig) {
		if w > 0 {
			c.params.SemanticWeight = w
		}
	}
}

// WithScoreThreshold overrides the minimum cosine similarity.
func WithScoreThreshold(t float64) Option {
	return func(c *clientConfig) {
		if t > 0 {
			c.params.Threshold = t
		}
	}
}

// WithCandidateCap bounds how many organizations a ranking pulls from storage.
func WithCandidateCap(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.params.CandidateCap = n
		}
	}
}

// WithRefreshPoolSize sets the embedding refresh worker pool size.
func WithRefreshPoolSize(n int) Option {
	return func(c *clientConfig) {
		c.refreshPoolSize = n
	}
}

// WithLogger sets a custom logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
