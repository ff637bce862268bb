package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/ttcdx/vendorlens/internal/domain"
)

// Filters are the structured predicates applied before relevance scoring.
// Zero-valued fields are inactive. From/To bound meeting_date inclusively.
type Filters struct {
	Vendor  string
	DocType string
	From    time.Time
	To      time.Time
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	return f.Vendor == "" && f.DocType == "" && f.From.IsZero() && f.To.IsZero()
}

// Query is a validated free-text + filter search request.
type Query struct {
	text    string
	filters Filters
	limit   int
	offset  int
}

// New validates and creates a Query. At least one of text or a filter must
// be supplied; limit and offset fall back to defaults and are capped by the
// caller-provided maximum.
func New(text string, filters Filters, limit, offset, defaultLimit, maxLimit int) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" && filters.IsZero() {
		return Query{}, fmt.Errorf("%w: supply query text or at least one filter", domain.ErrInvalidQuery)
	}
	if !filters.From.IsZero() && !filters.To.IsZero() && filters.To.Before(filters.From) {
		return Query{}, fmt.Errorf("%w: date range end precedes start", domain.ErrInvalidQuery)
	}
	if limit < 0 || offset < 0 {
		return Query{}, fmt.Errorf("%w: limit and offset must be non-negative", domain.ErrInvalidQuery)
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Query{text: text, filters: filters, limit: limit, offset: offset}, nil
}

// Text returns the trimmed free-text portion; may be empty when filters are set.
func (q *Query) Text() string { return q.text }

// Filters returns the structured predicates.
func (q *Query) Filters() Filters { return q.filters }

// Limit returns the page size after defaulting and capping.
func (q *Query) Limit() int { return q.limit }

// Offset returns the pagination offset.
func (q *Query) Offset() int { return q.offset }
