package vector

import (
	"sort"

	"github.com/givesearch/orgdex/internal/domain"
)

// Scored pairs a candidate organization with its similarity score.
type Scored struct {
	Org   domain.Organization
	Score float64
}

// Rank scores every candidate with a stored embedding against the query
// vector, drops scores below threshold, sorts descending, and truncates to
// limit. Candidates without an embedding are skipped, never scored as zero.
// Ties break on ascending EIN so output order is reproducible.
func Rank(query []float32, candidates []domain.Organization, threshold float64, limit int) []Scored {
	scored := make([]Scored, 0, len(candidates))

	for _, org := range candidates {
		if !org.HasEmbedding() {
			continue
		}
		score := Cosine(query, org.Embedding)
		if score < threshold {
			continue
		}
		scored = append(scored, Scored{Org: org, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Org.EIN < scored[j].Org.EIN
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return scored
}
