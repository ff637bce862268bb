package search

import (
	"context"

	"github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
)

// Indexer is the ranked-retrieval contract the service depends on.
type Indexer interface {
	Query(ctx context.Context, q *query.Query) ([]result.Result, int, error)
}
