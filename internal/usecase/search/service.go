package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/filter"
	"github.com/givesearch/orgdex/internal/domain/search/mode"
	"github.com/givesearch/orgdex/internal/domain/search/request"
	"github.com/givesearch/orgdex/internal/domain/search/result"
	"github.com/givesearch/orgdex/internal/metrics"
	"github.com/givesearch/orgdex/internal/taxonomy"
	"github.com/givesearch/orgdex/internal/vector"
)

// Params are the scoring and fusion constants. The defaults reproduce the
// historical ranking behavior, so downstream consumers see identical result
// orders; change them only with result compatibility in mind. Note the
// keyword-only mode score (0.7) differs from the keyword weight inside
// fusion (0.5); the two are independent knobs.
type Params struct {
	SemanticWeight float64 // multiplier for semantically ranked candidates in fusion
	KeywordWeight  float64 // score for keyword-only candidates entering fusion
	HybridBonus    float64 // added when a candidate appears in both rankings
	KeywordScore   float64 // fixed score in keyword-only mode
	Threshold      float64 // minimum cosine similarity for a semantic candidate
	CandidateCap   int     // bound on candidates pulled from storage per ranking
}

// DefaultParams returns the compatibility defaults.
func DefaultParams() Params {
	return Params{
		SemanticWeight: 0.8,
		KeywordWeight:  0.5,
		HybridBonus:    0.3,
		KeywordScore:   0.7,
		Threshold:      0.1,
		CandidateCap:   1000,
	}
}

// Service handles organization search across semantic, keyword, and hybrid modes.
type Service struct {
	repo   Repository
	embed  Embedder
	params Params
	logger *zap.Logger
}

// New creates a search service.
func New(repo Repository, embed Embedder, params Params, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, params: params, logger: logger}
}

// Search executes an organization search. Errors from any sub-stage surface
// as a single search failure, never a partial response.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	var (
		results []result.Result
		err     error
	)

	switch req.Mode() {
	case mode.Semantic:
		results, err = s.searchSemantic(ctx, req, req.State())
	case mode.Keyword:
		results, err = s.searchKeyword(ctx, req, req.State())
	case mode.Hybrid:
		results, err = s.searchHybrid(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unsupported search mode %q", domain.ErrInvalidRequest, req.Mode())
	}
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(string(req.Mode()), "error").Inc()
		s.logger.Error("Search failed",
			zap.String("mode", string(req.Mode())),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	metrics.SearchesTotal.WithLabelValues(string(req.Mode()), "ok").Inc()
	metrics.SearchResultCount.WithLabelValues(string(req.Mode())).Observe(float64(len(results)))
	return results, nil
}

// Explanation shows how a query decomposes against the controlled
// vocabularies, and the searchable text its matches would produce.
type Explanation struct {
	Query      string                 `json:"query"`
	Components domain.QueryComponents `json:"components"`
	SampleText string                 `json:"sample_text"`
}

// Explain decomposes a query without running a search.
func (s *Service) Explain(query string) Explanation {
	qc := taxonomy.ExtractQueryComponents(query)
	return Explanation{
		Query:      query,
		Components: qc,
		SampleText: taxonomy.SampleText(&qc),
	}
}

// searchSemantic embeds the query and ranks stored vectors by cosine similarity.
func (s *Service) searchSemantic(
	ctx context.Context, req *request.Request, state string,
) ([]result.Result, error) {
	ranked, err := s.rankSemantic(ctx, req, state)
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(ranked))
	for _, sc := range ranked {
		results = append(results, result.New(sc.Org, sc.Score, result.Semantic))
	}
	return results, nil
}

// searchKeyword runs a substring match over the indexed text fields.
// Every match gets the same fixed score, so the ascending-EIN candidate
// order is the result order.
func (s *Service) searchKeyword(
	ctx context.Context, req *request.Request, state string,
) ([]result.Result, error) {
	matched, err := s.matchKeyword(ctx, req, state)
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(matched))
	for _, org := range matched {
		results = append(results, result.New(org, s.params.KeywordScore, result.Keyword))
	}
	return results, nil
}

// searchHybrid runs the semantic and keyword rankings independently and
// fuses them. When no explicit state filter is given, the first geographic
// match from the query text fills it in; an explicit filter is never
// overridden.
func (s *Service) searchHybrid(ctx context.Context, req *request.Request) ([]result.Result, error) {
	state := req.State()
	if state == "" {
		state = taxonomy.ExtractQueryComponents(req.Query()).FirstState()
	}

	ranked, err := s.rankSemantic(ctx, req, state)
	if err != nil {
		return nil, err
	}

	matched, err := s.matchKeyword(ctx, req, state)
	if err != nil {
		return nil, err
	}

	return fuse(ranked, matched, s.params, req.Limit()), nil
}

func (s *Service) rankSemantic(
	ctx context.Context, req *request.Request, state string,
) ([]vector.Scored, error) {
	emb, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	candidates, err := s.repo.List(ctx, filter.Filter{
		State:            state,
		CauseCode:        req.CauseCode(),
		RequireEmbedding: true,
		Limit:            s.params.CandidateCap,
	})
	if err != nil {
		return nil, fmt.Errorf("list semantic candidates: %w", err)
	}

	return vector.Rank(emb.Embedding, candidates, s.params.Threshold, req.Limit()), nil
}

func (s *Service) matchKeyword(
	ctx context.Context, req *request.Request, state string,
) ([]domain.Organization, error) {
	candidates, err := s.repo.List(ctx, filter.Filter{
		State:     state,
		CauseCode: req.CauseCode(),
		Limit:     s.params.CandidateCap,
	})
	if err != nil {
		return nil, fmt.Errorf("list keyword candidates: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(req.Query()))
	if needle == "" {
		return nil, nil
	}

	matched := make([]domain.Organization, 0)
	for _, org := range candidates {
		if !keywordMatch(&org, needle) {
			continue
		}
		matched = append(matched, org)
		if len(matched) == req.Limit() {
			break
		}
	}
	return matched, nil
}

func keywordMatch(org *domain.Organization, needle string) bool {
	return strings.Contains(strings.ToLower(org.Name), needle) ||
		strings.Contains(strings.ToLower(org.SubName), needle) ||
		strings.Contains(strings.ToLower(org.SearchableText), needle)
}
