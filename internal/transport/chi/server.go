package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/givesearch/orgdex/internal/domain"
	"github.com/givesearch/orgdex/internal/domain/search/mode"
	"github.com/givesearch/orgdex/internal/domain/search/request"
	"github.com/givesearch/orgdex/internal/domain/search/result"
	healthuc "github.com/givesearch/orgdex/internal/usecase/health"
	indexuc "github.com/givesearch/orgdex/internal/usecase/index"
	searchuc "github.com/givesearch/orgdex/internal/usecase/search"
)

// Searcher executes and explains queries.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
	Explain(query string) searchuc.Explanation
}

// Refresher recomputes stored embeddings.
type Refresher interface {
	Refresh(ctx context.Context, eins []int64) (indexuc.Stats, error)
}

// OrganizationStore reads and writes organization records.
type OrganizationStore interface {
	Get(ctx context.Context, ein int64) (domain.Organization, error)
	Put(ctx context.Context, org *domain.Organization) error
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API.
type Server struct {
	search        Searcher
	refresh       Refresher
	orgs          OrganizationStore
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	refresh Refresher,
	orgs OrganizationStore,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		refresh: refresh,
		orgs:    orgs,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrOrganizationNotFound, http.StatusNotFound, codeOrganizationNotFound),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeVectorDimMismatch),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderErr),
		sentinelHandler(domain.ErrSearchFailed, http.StatusInternalServerError, codeSearchFailed),
	}
	return s
}

// Register mounts all API routes onto the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/search", s.SearchOrganizations)
	r.Get("/search/explain", s.ExplainQuery)
	r.Post("/search/refresh-embeddings", s.RefreshEmbeddings)
	r.Get("/organizations/{ein}", s.GetOrganization)
	r.Put("/organizations/{ein}", s.UpsertOrganization)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchOrganizations handles GET /search.
func (s *Server) SearchOrganizations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be an integer")
			return
		}
		limit = n
	}

	req, err := request.New(
		q.Get("q"),
		mode.Mode(q.Get("mode")),
		q.Get("state"),
		q.Get("cause"),
		limit,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, 0, len(results))
	for i := range results {
		items = append(items, searchResultToItem(&results[i]))
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: items, Count: len(items)})
}

// ExplainQuery handles GET /search/explain.
func (s *Server) ExplainQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "q is required")
		return
	}

	writeJSON(w, http.StatusOK, s.search.Explain(q))
}

// RefreshEmbeddings handles POST /search/refresh-embeddings.
// An empty or absent body refreshes the missing-embedding backlog.
func (s *Server) RefreshEmbeddings(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	stats, err := s.refresh.Refresh(r.Context(), req.EINs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetOrganization handles GET /organizations/{ein}.
func (s *Server) GetOrganization(w http.ResponseWriter, r *http.Request) {
	ein, ok := einParam(w, r)
	if !ok {
		return
	}

	org, err := s.orgs.Get(r.Context(), ein)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, organizationToPayload(&org))
}

// UpsertOrganization handles PUT /organizations/{ein}. The path parameter is
// authoritative; an EIN in the body is ignored.
func (s *Server) UpsertOrganization(w http.ResponseWriter, r *http.Request) {
	ein, ok := einParam(w, r)
	if !ok {
		return
	}

	var payload organizationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	org := organizationFromPayload(&payload)
	org.EIN = ein

	if err := s.orgs.Put(r.Context(), &org); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, organizationToPayload(&org))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func einParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	ein, err := strconv.ParseInt(chi.URLParam(r, "ein"), 10, 64)
	if err != nil || ein <= 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "ein must be a positive integer")
		return 0, false
	}
	return ein, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrOrganizationNotFound,
		domain.ErrVectorDimMismatch,
		domain.ErrEmbeddingProviderError,
		domain.ErrSearchFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
