package health

import (
	"context"
	"testing"
)

type fixedLen int

func (f fixedLen) Len() int { return int(f) }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(map[string]SnapshotLener{
		"corpus":  fixedLen(10),
		"catalog": fixedLen(5),
		"index":   fixedLen(10),
	})
	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %q, want %q", report.Status, Healthy)
	}
	for name, result := range report.Checks {
		if result != CheckOK {
			t.Errorf("check %q = %q", name, result)
		}
	}
}

func TestCheck_EmptySnapshotDegrades(t *testing.T) {
	svc := New(map[string]SnapshotLener{
		"corpus":  fixedLen(10),
		"catalog": fixedLen(0),
	})
	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("Status = %q, want %q", report.Status, Degraded)
	}
	if report.Checks["catalog"] != CheckError {
		t.Errorf("catalog = %q, want %q", report.Checks["catalog"], CheckError)
	}
	if report.Checks["corpus"] != CheckOK {
		t.Errorf("corpus = %q, want %q", report.Checks["corpus"], CheckOK)
	}
}

func TestCheck_NilComponent(t *testing.T) {
	svc := New(map[string]SnapshotLener{"corpus": nil})
	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("Status = %q, want %q", report.Status, Degraded)
	}
}
