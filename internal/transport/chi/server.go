// Package chi is the HTTP transport: hand-written handlers over the query
// orchestrator. HTTP status mapping lives here and only here; the core
// returns typed sentinel errors.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/criteria"
	searchq "github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
	healthuc "github.com/ttcdx/vendorlens/internal/usecase/health"
	queryuc "github.com/ttcdx/vendorlens/internal/usecase/query"
)

const dateLayout = "2006-01-02"

// statusClientClosedRequest is the nginx convention for a request the
// client abandoned; no standard status code covers it.
const statusClientClosedRequest = 499

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// PageLimits carries the pagination bounds handed to query construction.
type PageLimits struct {
	Default int
	Max     int
}

// Server exposes the search and recommend endpoints.
type Server struct {
	orchestrator  *queryuc.Service
	health        *healthuc.Service
	limits        PageLimits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	orchestrator *queryuc.Service,
	health *healthuc.Service,
	limits PageLimits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		orchestrator: orchestrator,
		health:       health,
		limits:       limits,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrTimeout, http.StatusGatewayTimeout, codeTimeout),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(context.Canceled, statusClientClosedRequest, codeClientClosed),
	}
	return s
}

// Routes mounts all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/search", s.SearchGet)
	r.Post("/api/v1/search", s.SearchPost)
	r.Post("/api/v1/recommend", s.Recommend)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchGet handles GET /api/v1/search?q=...&vendor=...&from=...&to=...
func (s *Server) SearchGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	req := searchRequest{
		Text: params.Get("q"),
		Filters: searchFilters{
			Vendor:  params.Get("vendor"),
			DocType: params.Get("doc_type"),
			From:    params.Get("from"),
			To:      params.Get("to"),
		},
	}
	var err error
	if req.Limit, err = intParam(params.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "limit must be an integer")
		return
	}
	if req.Offset, err = intParam(params.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, "offset must be an integer")
		return
	}

	s.runSearch(w, r, req)
}

// SearchPost handles POST /api/v1/search with a JSON body.
func (s *Server) SearchPost(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.runSearch(w, r, req)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, req searchRequest) {
	q, err := s.queryFromRequest(req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.orchestrator.Execute(r.Context(), queryuc.Request{Search: &q})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToItem(&resp.Results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   req.Text,
		Results: items,
		Total:   resp.Total,
	})
}

// Recommend handles POST /api/v1/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	selections := make(map[string][]string, len(req.Criteria))
	for dim, vals := range req.Criteria {
		selections[dim] = []string(vals)
	}
	set := criteria.New(selections)

	resp, err := s.orchestrator.Execute(r.Context(), queryuc.Request{
		Criteria:    &set,
		RelatedText: req.Requirements,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recommendationItem, len(resp.Recommendations))
	for i, rec := range resp.Recommendations {
		matches := make([]dimensionMatch, len(rec.Vendor.Matches()))
		for j, m := range rec.Vendor.Matches() {
			matches[j] = dimensionMatch{Dimension: m.Dimension(), Values: m.Values()}
		}
		items[i] = recommendationItem{
			CompanyName:       rec.Vendor.Name(),
			MatchScore:        rec.Vendor.Score(),
			Reasoning:         rec.Reasoning,
			MatchedDimensions: matches,
		}
	}

	out := recommendResponse{Recommendations: items}
	for i := range resp.Related {
		out.Related = append(out.Related, resultToItem(&resp.Related[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) queryFromRequest(req searchRequest) (searchq.Query, error) {
	filters, err := filtersFromRequest(req.Filters)
	if err != nil {
		return searchq.Query{}, err
	}
	return searchq.New(req.Text, filters, req.Limit, req.Offset, s.limits.Default, s.limits.Max)
}

func filtersFromRequest(f searchFilters) (searchq.Filters, error) {
	filters := searchq.Filters{Vendor: f.Vendor, DocType: f.DocType}
	var err error
	if f.From != "" {
		if filters.From, err = time.Parse(dateLayout, f.From); err != nil {
			return searchq.Filters{}, invalidDate("from", f.From)
		}
	}
	if f.To != "" {
		if filters.To, err = time.Parse(dateLayout, f.To); err != nil {
			return searchq.Filters{}, invalidDate("to", f.To)
		}
	}
	return filters, nil
}

func invalidDate(field, value string) error {
	return &domainError{
		sentinel: domain.ErrInvalidQuery,
		message:  field + " must be a YYYY-MM-DD date, got " + strconv.Quote(value),
	}
}

// domainError carries a caller-facing message on top of a sentinel.
type domainError struct {
	sentinel error
	message  string
}

func (e *domainError) Error() string { return e.message }
func (e *domainError) Unwrap() error { return e.sentinel }

func resultToItem(r *result.Result) searchResultItem {
	meta := searchItemMeta{
		VendorName: r.VendorName(),
		DocType:    r.DocType(),
	}
	if !r.MeetingDate().IsZero() {
		meta.MeetingDate = r.MeetingDate().Format(dateLayout)
	}
	return searchResultItem{
		ID:      r.DocumentID(),
		Title:   r.Title(),
		Snippet: r.Snippet(),
		Score:   r.Score(),
		Tags:    r.Tags(),
		Meta:    meta,
	}
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
func safeDomainMessage(err error) string {
	var de *domainError
	if errors.As(err, &de) {
		return de.message
	}
	if errors.Is(err, context.Canceled) {
		return "request canceled by client"
	}
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrTimeout,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
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
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
