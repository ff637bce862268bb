package recommend

import (
	"context"
	"fmt"
	"strings"
)

// TemplateReasoner renders match facts into plain deterministic prose. It
// is the default Reasoner and the fallback when an external provider fails:
// a recommendation never fails for want of prose.
type TemplateReasoner struct{}

// NewTemplateReasoner creates the default reasoner.
func NewTemplateReasoner() *TemplateReasoner {
	return &TemplateReasoner{}
}

// Reason implements Reasoner.
func (t *TemplateReasoner) Reason(_ context.Context, rec Recommendation) (string, error) {
	v := rec.Vendor
	if len(v.Matches()) == 0 {
		return fmt.Sprintf("%s did not match any of the stated criteria.", v.Name()), nil
	}

	parts := make([]string, 0, len(v.Matches()))
	for _, m := range v.Matches() {
		parts = append(parts, fmt.Sprintf("%s (%s)", m.Dimension(), strings.Join(m.Values(), ", ")))
	}
	return fmt.Sprintf("%s scored %d/100, matching on %s.",
		v.Name(), v.Score(), strings.Join(parts, "; ")), nil
}
