// Package health aggregates readiness checks over the in-process snapshots.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates readiness checks.
type Service struct {
	components map[string]SnapshotLener
}

// New creates a Service over named snapshot components.
func New(components map[string]SnapshotLener) *Service {
	return &Service{components: components}
}

// Check inspects every registered component. A component with an empty
// snapshot is reported as failing; any failure degrades the overall status.
func (s *Service) Check(_ context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components))
	status := Healthy
	for name, c := range s.components {
		if c == nil || c.Len() == 0 {
			checks[name] = CheckError
			status = Degraded
		} else {
			checks[name] = CheckOK
		}
	}
	return Report{Status: status, Checks: checks}
}
