package vector

import (
	"testing"

	"github.com/givesearch/orgdex/internal/domain"
)

func org(ein int64, vec []float32) domain.Organization {
	return domain.Organization{EIN: ein, Embedding: vec}
}

func TestRank_SortedDescendingAndLimited(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.Organization{
		org(1, []float32{0, 1}),     // 0.0, below threshold
		org(2, []float32{1, 0}),     // 1.0
		org(3, []float32{1, 1}),     // ~0.707
		org(4, []float32{0.5, 0.1}), // ~0.98
	}

	ranked := Rank(query, candidates, 0.1, 2)
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].Org.EIN != 2 || ranked[1].Org.EIN != 4 {
		t.Errorf("order = [%d %d], want [2 4]", ranked[0].Org.EIN, ranked[1].Org.EIN)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("scores not non-increasing at %d", i)
		}
	}
}

func TestRank_ThresholdExcludes(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.Organization{
		org(1, []float32{0, 1}),
		org(2, []float32{-1, 0}),
	}

	if got := Rank(query, candidates, 0.1, 10); len(got) != 0 {
		t.Errorf("len = %d, want 0 (all below threshold)", len(got))
	}
}

func TestRank_SkipsMissingEmbedding(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.Organization{
		org(1, nil),
		org(2, []float32{1, 0}),
	}

	ranked := Rank(query, candidates, 0.1, 10)
	if len(ranked) != 1 || ranked[0].Org.EIN != 2 {
		t.Errorf("unembedded candidate must be excluded, got %+v", ranked)
	}
}

func TestRank_ZeroQueryMatchesNothing(t *testing.T) {
	query := make([]float32, 2)
	candidates := []domain.Organization{org(1, []float32{1, 0})}

	if got := Rank(query, candidates, 0.1, 10); len(got) != 0 {
		t.Errorf("zero query vector should rank nothing above threshold, got %+v", got)
	}
}

func TestRank_TieBreakByEIN(t *testing.T) {
	query := []float32{1, 0}
	candidates := []domain.Organization{
		org(30, []float32{2, 0}),
		org(10, []float32{1, 0}),
		org(20, []float32{3, 0}),
	}

	ranked := Rank(query, candidates, 0.1, 10)
	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3", len(ranked))
	}
	// All score 1.0; order must be ascending EIN.
	for i, want := range []int64{10, 20, 30} {
		if ranked[i].Org.EIN != want {
			t.Errorf("ranked[%d].EIN = %d, want %d", i, ranked[i].Org.EIN, want)
		}
	}
}
