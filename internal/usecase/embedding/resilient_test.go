package embedding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/givesearch/orgdex/internal/domain"
)

const testDim = 4

type fakeEmbedder struct {
	vec       []float32
	err       error
	calls     int
	lastTexts []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	f.calls++
	f.lastTexts = append(f.lastTexts, text)
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.vec, TotalTokens: 3}, nil
}

func isZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func TestEmbed_AlwaysConfiguredWidth(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{1, 2, 3, 4}}
	r := NewResilient(inner, testDim, zap.NewNop())

	for _, text := range []string{"youth programs", "", "   ", "x"} {
		res, err := r.Embed(context.Background(), text)
		if err != nil {
			t.Fatalf("Embed(%q) error: %v", text, err)
		}
		if len(res.Embedding) != testDim {
			t.Errorf("Embed(%q) width = %d, want %d", text, len(res.Embedding), testDim)
		}
	}
}

func TestEmbed_EmptyAndWhitespaceYieldZeroVector(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{1, 2, 3, 4}}
	r := NewResilient(inner, testDim, zap.NewNop())

	for _, text := range []string{"", "   ", "\t\n"} {
		res, _ := r.Embed(context.Background(), text)
		if !isZero(res.Embedding) {
			t.Errorf("Embed(%q) = %v, want zero vector", text, res.Embedding)
		}
	}
	if inner.calls != 0 {
		t.Errorf("provider called %d times for empty input, want 0", inner.calls)
	}
}

func TestEmbed_ProviderFailureDegrades(t *testing.T) {
	inner := &fakeEmbedder{err: errors.New("model unavailable")}
	r := NewResilient(inner, testDim, zap.NewNop())

	res, err := r.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("error must not propagate, got %v", err)
	}
	if !isZero(res.Embedding) || len(res.Embedding) != testDim {
		t.Errorf("degraded result = %v, want zero vector of width %d", res.Embedding, testDim)
	}
}

func TestEmbed_WrongWidthDegrades(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{1, 2}}
	r := NewResilient(inner, testDim, zap.NewNop())

	res, _ := r.Embed(context.Background(), "text")
	if !isZero(res.Embedding) || len(res.Embedding) != testDim {
		t.Errorf("wrong-width result should degrade to zero vector, got %v", res.Embedding)
	}
}

func TestBatchEmbed_OrderAndPerItemZeroRule(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{1, 1, 1, 1}}
	r := NewResilient(inner, testDim, zap.NewNop())

	res, err := r.BatchEmbed(context.Background(), []string{"a", "", "b", "  "})
	if err != nil {
		t.Fatalf("BatchEmbed error: %v", err)
	}
	if len(res.Embeddings) != 4 {
		t.Fatalf("len = %d, want 4 (one output per input)", len(res.Embeddings))
	}
	if isZero(res.Embeddings[0]) || isZero(res.Embeddings[2]) {
		t.Error("non-empty items should get real vectors")
	}
	if !isZero(res.Embeddings[1]) || !isZero(res.Embeddings[3]) {
		t.Error("empty items should get zero vectors")
	}
	// Only non-empty texts reach the provider, in order.
	if len(inner.lastTexts) != 2 || inner.lastTexts[0] != "a" || inner.lastTexts[1] != "b" {
		t.Errorf("provider saw %v, want [a b]", inner.lastTexts)
	}
}

func TestBatchEmbed_ProviderFailureDegradesAllItems(t *testing.T) {
	inner := &fakeEmbedder{err: errors.New("overloaded")}
	r := NewResilient(inner, testDim, zap.NewNop())

	res, err := r.BatchEmbed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("error must not propagate, got %v", err)
	}
	for i, v := range res.Embeddings {
		if !isZero(v) || len(v) != testDim {
			t.Errorf("item %d = %v, want zero vector", i, v)
		}
	}
}

func TestBatchEmbed_AllEmpty(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{1, 1, 1, 1}}
	r := NewResilient(inner, testDim, zap.NewNop())

	res, _ := r.BatchEmbed(context.Background(), []string{"", " "})
	if len(res.Embeddings) != 2 {
		t.Fatalf("len = %d, want 2", len(res.Embeddings))
	}
	if inner.calls != 0 {
		t.Errorf("provider called for all-empty batch")
	}
}
