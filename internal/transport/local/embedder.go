// Package local provides a deterministic in-process embedding provider for
// offline runs and tests. Vectors are derived from an FNV hash of the input,
// so identical text always embeds identically; they carry no semantic
// meaning beyond "same text lands close, different text mostly does not".
package local

import (
	"context"
	"hash/fnv"

	"github.com/givesearch/orgdex/internal/domain"
)

// Embedder hashes text into pseudo-embeddings of a fixed width.
type Embedder struct {
	dim int
}

// NewEmbedder creates a local hash embedder with the given vector width.
func NewEmbedder(dim int) *Embedder {
	if dim <= 0 {
		dim = domain.DefaultDimensions
	}
	return &Embedder{dim: dim}
}

// Dimensions returns the vector width.
func (e *Embedder) Dimensions() int { return e.dim }

// Embed implements domain.Embedder. Never fails.
func (e *Embedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: e.embed(text)}, nil
}

// BatchEmbed implements domain.BatchEmbedder.
func (e *Embedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.embed(text)
	}
	return domain.BatchEmbeddingResult{Embeddings: out}, nil
}

func (e *Embedder) embed(text string) []float32 {
	v := make([]float32, e.dim)
	if text == "" {
		return v
	}

	h := fnv.New64a()
	for i, r := range text {
		h.Reset()
		_, _ = h.Write([]byte(string(r)))
		val := int64(h.Sum64())
		idx := i % e.dim
		v[idx] += float32(val%1000) / 1000.0
	}
	return v
}
