package chi

import (
	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/result"
)

// errorCode is a machine-readable error identifier in API responses.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeValidationFailed     errorCode = "validation_failed"
	codeOrganizationNotFound errorCode = "organization_not_found"
	codeVectorDimMismatch    errorCode = "vector_dim_mismatch"
	codeEmbeddingProviderErr errorCode = "embedding_provider_error"
	codeSearchFailed         errorCode = "search_failed"
	codeInternalError        errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type organizationPayload struct {
	EIN            int64  `json:"ein"`
	Name           string `json:"name"`
	SubName        string `json:"sub_name,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Zip            string `json:"zip,omitempty"`
	SubsectionCode int    `json:"subsection_code,omitempty"`
	CauseCode      string `json:"cause_code,omitempty"`
	HasEmbedding   bool   `json:"has_embedding"`
}

func organizationToPayload(org *domain.Organization) organizationPayload {
	return organizationPayload{
		EIN:            org.EIN,
		Name:           org.Name,
		SubName:        org.SubName,
		Address:        org.Address,
		City:           org.City,
		State:          org.State,
		Zip:            org.Zip,
		SubsectionCode: org.SubsectionCode,
		CauseCode:      org.CauseCode,
		HasEmbedding:   org.HasEmbedding(),
	}
}

func organizationFromPayload(p *organizationPayload) domain.Organization {
	return domain.Organization{
		EIN:            p.EIN,
		Name:           p.Name,
		SubName:        p.SubName,
		Address:        p.Address,
		City:           p.City,
		State:          p.State,
		Zip:            p.Zip,
		SubsectionCode: p.SubsectionCode,
		CauseCode:      p.CauseCode,
	}
}

type searchResultItem struct {
	EIN       int64   `json:"ein"`
	Name      string  `json:"name"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	CauseCode string  `json:"cause_code,omitempty"`
	Score     float64 `json:"score"`
	Match     string  `json:"match"`
}

type searchResponse struct {
	Results []searchResultItem `json:"results"`
	Count   int                `json:"count"`
}

func searchResultToItem(r *result.Result) searchResultItem {
	org := r.Org()
	return searchResultItem{
		EIN:       org.EIN,
		Name:      org.Name,
		City:      org.City,
		State:     org.State,
		CauseCode: org.CauseCode,
		Score:     r.Score(),
		Match:     string(r.Match()),
	}
}

type refreshRequest struct {
	EINs []int64 `json:"eins"`
}
