package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ttcdx/vendorlens/internal/domain/vendor"
)

// vendorRecord is the YAML fixture shape for one catalog entry. Attribute
// keys are the dimension constants; values are the pre-derived tags, so the
// CSV thresholds and size bands do not apply here.
type vendorRecord struct {
	ID         string              `yaml:"id"`
	Name       string              `yaml:"name"`
	Attributes map[string][]string `yaml:"attributes"`
}

// Load reads a catalog fixture, dispatching on the file extension:
// .yaml/.yml fixtures carry dimension attributes directly, anything else is
// parsed as a vendors.csv export.
func Load(path string) ([]vendor.Vendor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return LoadCSV(path)
	}
}

// LoadYAML reads a YAML catalog fixture into vendors.
func LoadYAML(path string) ([]vendor.Vendor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var records []vendorRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	vendors := make([]vendor.Vendor, 0, len(records))
	for i, r := range records {
		v, err := vendor.New(r.ID, r.Name, r.Attributes)
		if err != nil {
			return nil, fmt.Errorf("catalog record %d: %w", i, err)
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}
