package search

import (
	"sort"

	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/result"
	"github.com/givesearch/orgdex/internal/vector"
)

// fuse merges a semantic ranking and a keyword candidate list by additive
// weighting. A semantically ranked organization enters at rawScore *
// SemanticWeight with tag semantic; a keyword-only organization enters at
// KeywordWeight with tag keyword; an organization present in both keeps its
// weighted semantic score plus HybridBonus and is tagged hybrid. Entries are
// deduplicated by EIN, never by object identity: the two source rankings load
// separate instances of the same organization.
func fuse(semantic []vector.Scored, keyword []domain.Organization, p Params, limit int) []result.Result {
	type scored struct {
		org   domain.Organization
		score float64
		match result.Match
	}

	merged := make(map[int64]*scored, len(semantic)+len(keyword))
	for _, sc := range semantic {
		merged[sc.Org.EIN] = &scored{
			org:   sc.Org,
			score: sc.Score * p.SemanticWeight,
			match: result.Semantic,
		}
	}

	for _, org := range keyword {
		if existing, ok := merged[org.EIN]; ok {
			existing.score += p.HybridBonus
			existing.match = result.Hybrid
			continue
		}
		merged[org.EIN] = &scored{org: org, score: p.KeywordWeight, match: result.Keyword}
	}

	results := make([]result.Result, 0, len(merged))
	for _, sc := range merged {
		results = append(results, result.New(sc.org, sc.score, sc.match))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		return results[i].EIN() < results[j].EIN()
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results
}
