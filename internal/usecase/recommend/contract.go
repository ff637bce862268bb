package recommend

import (
	"context"

	"github.com/ttcdx/vendorlens/internal/domain/vendor"
)

// CatalogReader reads the vendor catalog snapshot.
type CatalogReader interface {
	All() []vendor.Vendor
}

// Reasoner renders the structured match facts of one scored vendor into
// prose. The scorer only guarantees the facts; how the text is produced is
// a collaborator concern (a template, an LLM, anything honoring the
// contract).
type Reasoner interface {
	Reason(ctx context.Context, rec Recommendation) (string, error)
}
