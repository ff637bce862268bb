// Package search is the document search use case: it validates nothing
// beyond what the query value type already guarantees and delegates ranked
// retrieval to the index, adding metrics and logging.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
	"github.com/ttcdx/vendorlens/internal/logger"
	"github.com/ttcdx/vendorlens/internal/metrics"
)

// Service handles free-text + filtered document search.
type Service struct {
	index Indexer
}

// New creates a search service.
func New(index Indexer) *Service {
	return &Service{index: index}
}

// Search runs a ranked query. Returns the page of results and the total
// number of matches before pagination.
func (s *Service) Search(ctx context.Context, q *query.Query) ([]result.Result, int, error) {
	start := time.Now()

	results, total, err := s.index.Query(ctx, q)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, 0, fmt.Errorf("query index: %w", err)
	}

	metrics.SearchesTotal.WithLabelValues("success").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	logger.FromContext(ctx).Debug("search executed",
		zap.String("text", q.Text()),
		zap.Int("total", total),
		zap.Int("returned", len(results)),
	)
	return results, total, nil
}
