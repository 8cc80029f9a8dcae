// Package embedding wraps an embedding provider with the degradation policy
// of the search core: callers that can tolerate a degraded result never see
// a provider failure, they see the all-zero sentinel vector.
package embedding

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/givesearch/orgdex/internal/domain"
)

// Resilient decorates an embedder so that Embed and BatchEmbed never fail.
// Empty or whitespace-only input deterministically yields the zero vector
// without touching the provider. Provider errors and wrong-width vectors
// degrade to the zero vector and a log line. The zero vector scores 0
// against everything, so downstream ranking needs no special cases.
type Resilient struct {
	inner  domain.Embedder
	dim    int
	logger *zap.Logger
}

// NewResilient creates the degrading decorator. dim is the configured
// embedding width every returned vector is guaranteed to have.
func NewResilient(inner domain.Embedder, dim int, logger *zap.Logger) *Resilient {
	return &Resilient{inner: inner, dim: dim, logger: logger}
}

// Dimensions returns the configured embedding width.
func (r *Resilient) Dimensions() int { return r.dim }

// Embed vectorizes one text. The returned error is always nil.
func (r *Resilient) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.EmbeddingResult{Embedding: domain.ZeroVector(r.dim)}, nil
	}

	res, err := r.inner.Embed(ctx, text)
	if err != nil {
		r.logger.Warn("embedding degraded to zero vector", zap.Error(err))
		return domain.EmbeddingResult{Embedding: domain.ZeroVector(r.dim)}, nil
	}
	if len(res.Embedding) != r.dim {
		r.logger.Warn("embedding width mismatch, degraded to zero vector",
			zap.Int("want", r.dim), zap.Int("got", len(res.Embedding)))
		return domain.EmbeddingResult{Embedding: domain.ZeroVector(r.dim)}, nil
	}

	return res, nil
}

// BatchEmbed vectorizes texts preserving input order, one output per input.
// Empty items get the zero vector without being sent to the provider; a
// provider failure degrades every remaining item to the zero vector instead
// of failing the batch. The returned error is always nil.
func (r *Resilient) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	out := domain.BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}

	valid := make([]string, 0, len(texts))
	validIdx := make([]int, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			out.Embeddings[i] = domain.ZeroVector(r.dim)
			continue
		}
		valid = append(valid, text)
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return out, nil
	}

	res, err := r.batchInner(ctx, valid)
	if err != nil {
		r.logger.Warn("batch embedding degraded to zero vectors",
			zap.Int("items", len(valid)), zap.Error(err))
		for _, i := range validIdx {
			out.Embeddings[i] = domain.ZeroVector(r.dim)
		}
		return out, nil
	}

	out.PromptTokens = res.PromptTokens
	out.TotalTokens = res.TotalTokens
	for j, i := range validIdx {
		vec := res.Embeddings[j]
		if len(vec) != r.dim {
			r.logger.Warn("embedding width mismatch in batch, degraded to zero vector",
				zap.Int("item", i), zap.Int("want", r.dim), zap.Int("got", len(vec)))
			vec = domain.ZeroVector(r.dim)
		}
		out.Embeddings[i] = vec
	}

	return out, nil
}

func (r *Resilient) batchInner(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := r.inner.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, r.inner, texts)
}

// HealthCheck delegates to the provider. Unlike Embed it propagates failure:
// a health probe wants the truth, not a sentinel.
func (r *Resilient) HealthCheck(ctx context.Context) error {
	if hc, ok := r.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
