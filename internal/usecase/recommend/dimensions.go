package recommend

import "fmt"

// Dimension is one axis of the questionnaire: a stable machine key, the
// weight it carries, and whether the buyer may select multiple values.
// The dimension set is configuration, not code, so a new questionnaire can
// ship without touching the scoring algorithm.
type Dimension struct {
	Key    string
	Weight int
	Multi  bool
}

// DefaultDimensions is the stock vendor-fit questionnaire. Weights sum to
// 100; single-select dimensions carry more weight than the multi-select
// nice-to-have ones.
func DefaultDimensions() []Dimension {
	return []Dimension{
		{Key: "priorities", Weight: 10, Multi: true},
		{Key: "developmentStyle", Weight: 20, Multi: false},
		{Key: "companySize", Weight: 10, Multi: false},
		{Key: "techStack", Weight: 25, Multi: true},
		{Key: "industry", Weight: 10, Multi: false},
		{Key: "ipOwnership", Weight: 15, Multi: false},
		{Key: "partnership", Weight: 10, Multi: false},
	}
}

// ValidateDimensions checks a configured dimension table.
func ValidateDimensions(dims []Dimension) error {
	if len(dims) == 0 {
		return fmt.Errorf("at least one dimension is required")
	}
	seen := make(map[string]bool, len(dims))
	total := 0
	for _, d := range dims {
		if d.Key == "" {
			return fmt.Errorf("dimension key must not be empty")
		}
		if seen[d.Key] {
			return fmt.Errorf("duplicate dimension %q", d.Key)
		}
		seen[d.Key] = true
		if d.Weight <= 0 {
			return fmt.Errorf("dimension %q: weight must be positive", d.Key)
		}
		total += d.Weight
	}
	if total != 100 {
		return fmt.Errorf("dimension weights must sum to 100, got %d", total)
	}
	return nil
}
