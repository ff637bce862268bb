// Package query is the orchestrator: the single entry point that validates
// request shape, enforces the request time budget, dispatches to the search
// index or the recommendation scorer, and assembles the response. The two
// query modes never share a code path past this package. A request either
// fully succeeds with a complete ordered result or fails with exactly one
// typed error.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/criteria"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/scored"
	searchq "github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
	"github.com/ttcdx/vendorlens/internal/logger"
	recommenduc "github.com/ttcdx/vendorlens/internal/usecase/recommend"
)

// state tracks a request through the orchestrator.
type state string

const (
	stateReceived   state = "received"
	stateValidated  state = "validated"
	stateDispatched state = "dispatched"
	stateCompleted  state = "completed"
	stateFailed     state = "failed"
)

// Request is the orchestrator input: exactly one of Search or Criteria must
// be set. RelatedText optionally runs a side document search alongside a
// criteria request; it never blends into the match score.
type Request struct {
	Search      *searchq.Query
	Criteria    *criteria.Set
	RelatedText string
}

// Recommendation is one explained catalog entry in the response.
type Recommendation struct {
	Vendor    scored.Vendor
	Reasoning string
}

// Response carries the result of whichever mode was dispatched.
type Response struct {
	Results         []result.Result
	Total           int
	Recommendations []Recommendation
	Related         []result.Result
}

// Config holds the request-level contracts the orchestrator enforces.
type Config struct {
	// Timeout is the per-request budget; zero disables it.
	Timeout time.Duration
	// TopN caps the recommendation list after full ranking; zero returns all.
	TopN int
	// RelatedLimit is the page size for the criteria-mode side search.
	RelatedLimit int
}

// Service orchestrates the two query modes.
type Service struct {
	searcher    Searcher
	recommender Recommender
	reasoner    Reasoner
	fallback    Reasoner
	cfg         Config
}

// New creates an orchestrator. reasoner may be nil, in which case the
// deterministic template reasoner renders all prose.
func New(searcher Searcher, recommender Recommender, reasoner Reasoner, cfg Config) *Service {
	fallback := recommenduc.NewTemplateReasoner()
	if reasoner == nil {
		reasoner = fallback
	}
	if cfg.RelatedLimit <= 0 {
		cfg.RelatedLimit = 5
	}
	return &Service{
		searcher:    searcher,
		recommender: recommender,
		reasoner:    reasoner,
		fallback:    fallback,
		cfg:         cfg,
	}
}

// Execute runs one request through the full lifecycle.
func (s *Service) Execute(ctx context.Context, req Request) (Response, error) {
	st := stateReceived
	start := time.Now()
	log := logger.FromContext(ctx)

	defer func() {
		log.Debug("query lifecycle",
			zap.String("state", string(st)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()

	if err := validate(req); err != nil {
		st = stateFailed
		return Response{}, err
	}
	st = stateValidated

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	st = stateDispatched
	var resp Response
	var err error
	if req.Search != nil {
		resp, err = s.dispatchSearch(ctx, req.Search)
	} else {
		resp, err = s.dispatchRecommend(ctx, *req.Criteria, req.RelatedText)
	}
	if err != nil {
		st = stateFailed
		return Response{}, mapTimeout(err)
	}

	st = stateCompleted
	return resp, nil
}

// validate enforces the exactly-one-of request shape before dispatch.
func validate(req Request) error {
	switch {
	case req.Search == nil && req.Criteria == nil:
		return fmt.Errorf("%w: request carries neither search text nor criteria", domain.ErrInvalidQuery)
	case req.Search != nil && req.Criteria != nil:
		return fmt.Errorf("%w: request mixes search and criteria modes", domain.ErrInvalidQuery)
	case req.Search != nil && req.RelatedText != "":
		return fmt.Errorf("%w: related text is only valid with criteria", domain.ErrInvalidQuery)
	}
	return nil
}

func (s *Service) dispatchSearch(ctx context.Context, q *searchq.Query) (Response, error) {
	results, total, err := s.searcher.Search(ctx, q)
	if err != nil {
		return Response{}, err
	}
	return Response{Results: results, Total: total}, nil
}

func (s *Service) dispatchRecommend(ctx context.Context, c criteria.Set, relatedText string) (Response, error) {
	vendors, err := s.recommender.Recommend(ctx, c)
	if err != nil {
		return Response{}, err
	}

	if s.cfg.TopN > 0 && len(vendors) > s.cfg.TopN {
		vendors = vendors[:s.cfg.TopN]
	}

	recs := make([]Recommendation, 0, len(vendors))
	for _, v := range vendors {
		recs = append(recs, Recommendation{
			Vendor:    v,
			Reasoning: s.reason(ctx, recommenduc.Recommendation{Vendor: v, Criteria: c}),
		})
	}

	resp := Response{Recommendations: recs}
	if relatedText != "" {
		resp.Related = s.searchRelated(ctx, relatedText)
	}
	return resp, nil
}

// reason renders prose for one recommendation, falling back to the
// deterministic template when the configured provider fails. The structured
// facts stay authoritative either way.
func (s *Service) reason(ctx context.Context, rec recommenduc.Recommendation) string {
	text, err := s.reasoner.Reason(ctx, rec)
	if err == nil {
		return text
	}
	logger.FromContext(ctx).Warn("reasoner failed, using template",
		zap.String("vendor", rec.Vendor.VendorID()),
		zap.Error(err),
	)
	text, _ = s.fallback.Reason(ctx, rec)
	return text
}

// searchRelated runs the optional side search. Its failure is logged, not
// surfaced: the recommendation list is the contract, related documents are
// garnish.
func (s *Service) searchRelated(ctx context.Context, text string) []result.Result {
	q, err := searchq.New(text, searchq.Filters{}, s.cfg.RelatedLimit, 0, s.cfg.RelatedLimit, s.cfg.RelatedLimit)
	if err != nil {
		return nil
	}
	related, _, err := s.searcher.Search(ctx, &q)
	if err != nil {
		logger.FromContext(ctx).Warn("related search failed", zap.Error(err))
		return nil
	}
	return related
}

func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrTimeout, err)
	}
	return err
}
