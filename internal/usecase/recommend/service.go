// Package recommend implements the multi-criteria recommendation scorer:
// it turns a structured questionnaire answer into a ranked, explained list
// of catalog vendors. Scoring is pure and deterministic; identical inputs
// produce identical orderings.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/criteria"
	"github.com/ttcdx/vendorlens/internal/domain/recommend/scored"
	"github.com/ttcdx/vendorlens/internal/domain/vendor"
	"github.com/ttcdx/vendorlens/internal/logger"
	"github.com/ttcdx/vendorlens/internal/metrics"
)

// Recommendation pairs a scored vendor with the criteria it was scored
// against; the Reasoner receives both.
type Recommendation struct {
	Vendor   scored.Vendor
	Criteria criteria.Set
}

// Service scores criteria sets against the vendor catalog.
type Service struct {
	catalog    CatalogReader
	dimensions []Dimension
}

// New creates a recommendation service with the given dimension table.
func New(catalog CatalogReader, dimensions []Dimension) *Service {
	return &Service{catalog: catalog, dimensions: dimensions}
}

// Recommend scores every catalog vendor against the criteria set and
// returns them ranked by score descending, vendor ID ascending. A fully
// empty criteria set is valid and yields every vendor with score 0 in ID
// order: "show me everything" degrades gracefully instead of failing.
func (s *Service) Recommend(ctx context.Context, c criteria.Set) ([]scored.Vendor, error) {
	start := time.Now()

	if err := s.validate(c); err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	vendors := s.catalog.All()
	results := make([]scored.Vendor, 0, len(vendors))
	for i := range vendors {
		if err := ctx.Err(); err != nil {
			metrics.RecommendationsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("score vendors: %w", mapCtxErr(err))
		}
		results = append(results, s.scoreVendor(&vendors[i], c))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		return results[i].VendorID() < results[j].VendorID()
	})

	metrics.RecommendationsTotal.WithLabelValues("success").Inc()
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	logger.FromContext(ctx).Debug("criteria scored",
		zap.Int("vendors", len(results)),
		zap.Strings("dimensions", c.Dimensions()),
	)
	return results, nil
}

// validate rejects unknown dimension keys and multiple selections on
// single-select dimensions before any scoring happens.
func (s *Service) validate(c criteria.Set) error {
	byKey := make(map[string]Dimension, len(s.dimensions))
	for _, d := range s.dimensions {
		byKey[d.Key] = d
	}
	for _, key := range c.Dimensions() {
		d, ok := byKey[key]
		if !ok {
			return fmt.Errorf("%w: unknown criteria dimension %q", domain.ErrInvalidQuery, key)
		}
		if !d.Multi && len(c.Values(key)) > 1 {
			return fmt.Errorf("%w: dimension %q accepts a single selection", domain.ErrInvalidQuery, key)
		}
	}
	return nil
}

// scoreVendor computes one vendor's 0-100 score. Unset dimensions are
// excluded from both numerator and denominator, so an unanswered question
// never penalizes or inflates a score.
func (s *Service) scoreVendor(v *vendor.Vendor, c criteria.Set) scored.Vendor {
	var contribution float64
	weightInPlay := 0
	var matches []scored.DimensionMatch

	for _, d := range s.dimensions {
		if !c.IsSet(d.Key) {
			continue
		}
		weightInPlay += d.Weight

		selected := c.Values(d.Key)
		matched := make([]string, 0, len(selected))
		for _, val := range selected {
			if v.Has(d.Key, val) {
				matched = append(matched, val)
			}
		}
		if len(matched) == 0 {
			continue
		}

		if d.Multi {
			// Partial credit proportional to overlap.
			contribution += float64(d.Weight) * float64(len(matched)) / float64(len(selected))
		} else {
			contribution += float64(d.Weight)
		}
		matches = append(matches, scored.NewDimensionMatch(d.Key, matched))
	}

	score := 0
	if weightInPlay > 0 {
		score = int(math.Round(contribution / float64(weightInPlay) * 100))
	}
	return scored.NewVendor(v.ID(), v.Name(), score, matches)
}

func mapCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	return err
}
