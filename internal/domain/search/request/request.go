package request

import (
	"fmt"
	"strings"

	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated search query.
type Request struct {
	query      string
	searchMode mode.Mode
	state      string
	causeCode  string
	limit      int
}

// New validates and normalizes search parameters.
// Defaults: mode=hybrid, limit=20. The state filter is uppercased.
func New(query string, m mode.Mode, state, causeCode string, limit int) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if m == "" {
		m = mode.Default
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid search mode %q", domain.ErrInvalidRequest, m)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		query:      query,
		searchMode: m,
		state:      strings.ToUpper(strings.TrimSpace(state)),
		causeCode:  strings.TrimSpace(causeCode),
		limit:      limit,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Mode returns the search mode.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// State returns the explicit state filter, or "" when none was given.
func (r *Request) State() string { return r.state }

// CauseCode returns the explicit cause-area filter, or "".
func (r *Request) CauseCode() string { return r.causeCode }

// Limit returns the result limit.
func (r *Request) Limit() int { return r.limit }
