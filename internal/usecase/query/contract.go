package query

import (
	"context"

	"github.com/ttcdx/vendorlens/internal/domain/recommend/criteria"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/scored"
	searchq "github.com/ttcdx/vendorlens/internal/domain/search/query"
	"github.com/ttcdx/vendorlens/internal/domain/search/result"
	recommenduc "github.com/ttcdx/vendorlens/internal/usecase/recommend"
)

// Searcher is the document search collaborator.
type Searcher interface {
	Search(ctx context.Context, q *searchq.Query) ([]result.Result, int, error)
}

// Recommender is the criteria scoring collaborator.
type Recommender interface {
	Recommend(ctx context.Context, c criteria.Set) ([]scored.Vendor, error)
}

// Reasoner renders one recommendation's match facts into prose.
type Reasoner interface {
	Reason(ctx context.Context, rec recommenduc.Recommendation) (string, error)
}
