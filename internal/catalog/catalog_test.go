package catalog

import (
	"errors"
	"testing"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/vendor"
)

func TestReplace_And_All(t *testing.T) {
	c := New()
	err := c.Replace([]vendor.Vendor{
		vendor.Reconstruct("v2", "ByteWorks", nil),
		vendor.Reconstruct("v1", "AcmeSoft", nil),
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	all := c.All()
	if len(all) != 2 || all[0].ID() != "v1" || all[1].ID() != "v2" {
		t.Errorf("All() order = [%s %s], want [v1 v2]", all[0].ID(), all[1].ID())
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d", c.Len())
	}
}

func TestReplace_DuplicateID(t *testing.T) {
	c := New()
	err := c.Replace([]vendor.Vendor{
		vendor.Reconstruct("v1", "A", nil),
		vendor.Reconstruct("v1", "B", nil),
	})
	if err == nil {
		t.Fatal("expected error for duplicate vendor ID")
	}
}

func TestGet(t *testing.T) {
	c := New()
	if err := c.Replace([]vendor.Vendor{vendor.Reconstruct("v1", "AcmeSoft", nil)}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	v, err := c.Get("v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Name() != "AcmeSoft" {
		t.Errorf("Name() = %q", v.Name())
	}
	if _, err := c.Get("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
