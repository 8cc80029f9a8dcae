package orgdex

import (
	"context"
	"fmt"

	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/mode"
	"github.com/givesearch/orgdex/internal/domain/search/request"
	"github.com/givesearch/orgdex/internal/domain/search/result"
)

// SearchMode selects the ranking strategy.
type SearchMode string

// Ranking strategies.
const (
	ModeHybrid   SearchMode = "hybrid"
	ModeSemantic SearchMode = "semantic"
	ModeKeyword  SearchMode = "keyword"
)

// SearchOptions configures a search query.
type SearchOptions struct {
	Mode      SearchMode
	State     string // two-letter state filter
	CauseCode string // NTEE-style cause-area filter
	Limit     int
}

// SearchResult is a single ranked organization.
type SearchResult struct {
	EIN       int64
	Name      string
	City      string
	State     string
	CauseCode string
	Score     float64
	Match     string // "semantic", "keyword", or "hybrid"
}

// Search ranks organizations against a free-text query.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) ([]SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	req, err := request.New(query, mode.Mode(opts.Mode), opts.State, opts.CauseCode, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromSearchResults(results), nil
}

// Explanation shows how a query decomposes against the controlled vocabularies.
type Explanation struct {
	Geographic []string
	CauseAreas []string
	OrgType    string
	SampleText string
}

// Explain decomposes a query without running a search.
func (c *Client) Explain(query string) Explanation {
	ex := c.searchSvc.Explain(query)
	return Explanation{
		Geographic: ex.Components.Geographic,
		CauseAreas: ex.Components.CauseAreas,
		OrgType:    ex.Components.OrgType,
		SampleText: ex.SampleText,
	}
}

// RefreshStats summarizes an embedding refresh run.
type RefreshStats struct {
	Updated int
	Errors  int
}

// RefreshEmbeddings recomputes searchable text and embeddings for the given
// organizations, or for the whole missing-embedding backlog when eins is
// empty. Item failures are counted, never fatal.
func (c *Client) RefreshEmbeddings(ctx context.Context, eins ...int64) (RefreshStats, error) {
	st, err := c.refreshSvc.Refresh(ctx, eins)
	if err != nil {
		return RefreshStats{}, fmt.Errorf("refresh embeddings: %w", err)
	}
	return RefreshStats{Updated: st.Updated, Errors: st.Errors}, nil
}

func fromSearchResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, 0, len(results))
	for i := range results {
		org := results[i].Org()
		out = append(out, SearchResult{
			EIN:       org.EIN,
			Name:      org.Name,
			City:      org.City,
			State:     org.State,
			CauseCode: org.CauseCode,
			Score:     results[i].Score(),
			Match:     string(results[i].Match()),
		})
	}
	return out
}

// Organization is a nonprofit record.
type Organization struct {
	EIN            int64
	Name           string
	SubName        string
	Address        string
	City           string
	State          string
	Zip            string
	SubsectionCode int
	CauseCode      string
	HasEmbedding   bool
}

// PutOrganization creates or updates an organization record.
func (c *Client) PutOrganization(ctx context.Context, org Organization) error {
	rec := domain.Organization{
		EIN:            org.EIN,
		Name:           org.Name,
		SubName:        org.SubName,
		Address:        org.Address,
		City:           org.City,
		State:          org.State,
		Zip:            org.Zip,
		SubsectionCode: org.SubsectionCode,
		CauseCode:      org.CauseCode,
	}
	if err := c.orgs.Put(ctx, &rec); err != nil {
		return fmt.Errorf("put organization: %w", err)
	}
	return nil
}

// GetOrganization fetches an organization by EIN.
func (c *Client) GetOrganization(ctx context.Context, ein int64) (Organization, error) {
	rec, err := c.orgs.Get(ctx, ein)
	if err != nil {
		return Organization{}, fmt.Errorf("get organization: %w", err)
	}
	return Organization{
		EIN:            rec.EIN,
		Name:           rec.Name,
		SubName:        rec.SubName,
		Address:        rec.Address,
		City:           rec.City,
		State:          rec.State,
		Zip:            rec.Zip,
		SubsectionCode: rec.SubsectionCode,
		CauseCode:      rec.CauseCode,
		HasEmbedding:   rec.HasEmbedding(),
	}, nil
}
