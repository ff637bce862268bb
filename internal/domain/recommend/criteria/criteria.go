package criteria

import "sort"

// Set is a buyer's structured answer: dimension key -> selected values.
// A missing or empty entry means "no preference" for that dimension.
// Transient, constructed per request.
type Set struct {
	selections map[string][]string
}

// New creates a Set from raw selections. Empty value slices are dropped so
// an unset dimension and an absent one behave identically.
func New(selections map[string][]string) Set {
	clean := make(map[string][]string, len(selections))
	for dim, vals := range selections {
		kept := make([]string, 0, len(vals))
		for _, v := range vals {
			if v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			clean[dim] = kept
		}
	}
	return Set{selections: clean}
}

// Values returns the selected values for a dimension; nil when unset.
func (s Set) Values(dimension string) []string { return s.selections[dimension] }

// IsSet reports whether the buyer answered the dimension.
func (s Set) IsSet(dimension string) bool { return len(s.selections[dimension]) > 0 }

// IsEmpty reports whether every dimension is unset.
func (s Set) IsEmpty() bool { return len(s.selections) == 0 }

// Dimensions returns the answered dimension keys in sorted order.
func (s Set) Dimensions() []string {
	dims := make([]string, 0, len(s.selections))
	for dim := range s.selections {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	return dims
}
