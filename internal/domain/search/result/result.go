package result

import "github.com/givesearch/orgdex/internal/domain"

// Match tags which ranking a result came from.
type Match string

// Match provenance values.
const (
	Semantic Match = "semantic"
	Keyword  Match = "keyword"
	// Hybrid marks a result that appeared in both rankings.
	Hybrid Match = "hybrid"
)

// Result is a single search hit. Request-scoped: built during ranking,
// discarded after the response.
type Result struct {
	org   domain.Organization
	score float64
	match Match
}

// New creates a search result.
func New(org domain.Organization, score float64, match Match) Result {
	return Result{org: org, score: score, match: match}
}

// Org returns the matched organization.
func (r *Result) Org() domain.Organization { return r.org }

// EIN returns the organization's stable identifier, the dedup key.
func (r *Result) EIN() int64 { return r.org.EIN }

// Score returns the relevance score. After fusion it is not bounded to [0,1].
func (r *Result) Score() float64 { return r.score }

// Match returns the provenance tag.
func (r *Result) Match() Match { return r.match }
