package scored

// DimensionMatch is one structured explanation fragment: the dimension that
// contributed weight and the tag values that matched. These facts are the
// contract handed to any prose renderer.
type DimensionMatch struct {
	dimension string
	values    []string
}

// NewDimensionMatch creates an explanation fragment.
func NewDimensionMatch(dimension string, values []string) DimensionMatch {
	return DimensionMatch{dimension: dimension, values: values}
}

// Dimension returns the machine key of the matched dimension.
func (m *DimensionMatch) Dimension() string { return m.dimension }

// Values returns the matched tag values.
func (m *DimensionMatch) Values() []string { return m.values }

// Vendor is a scored catalog entry, produced fresh per request.
type Vendor struct {
	vendorID string
	name     string
	score    int
	matches  []DimensionMatch
}

// NewVendor creates a scored vendor. Score must be in [0,100].
func NewVendor(vendorID, name string, score int, matches []DimensionMatch) Vendor {
	return Vendor{vendorID: vendorID, name: name, score: score, matches: matches}
}

// VendorID returns the vendor identifier.
func (v *Vendor) VendorID() string { return v.vendorID }

// Name returns the vendor display name.
func (v *Vendor) Name() string { return v.name }

// Score returns the 0-100 match score.
func (v *Vendor) Score() int { return v.score }

// Matches returns the ordered explanation fragments, one per dimension that
// contributed nonzero weight.
func (v *Vendor) Matches() []DimensionMatch { return v.matches }
