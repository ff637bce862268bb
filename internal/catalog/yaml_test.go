package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `- id: v1
  name: AcmeSoft
  attributes:
    techStack: [aws, ai_ml]
    companySize: [medium]
- id: v2
  name: ByteWorks
  attributes:
    industry: [manufacturing]
`

func writeCatalogFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadYAML_Basic(t *testing.T) {
	vendors, err := LoadYAML(writeCatalogFixture(t, "vendors.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(vendors) != 2 {
		t.Fatalf("len = %d, want 2", len(vendors))
	}
	if vendors[0].ID() != "v1" || vendors[0].Name() != "AcmeSoft" {
		t.Errorf("vendor = %q %q", vendors[0].ID(), vendors[0].Name())
	}
	if !vendors[0].Has(DimTechStack, "ai_ml") {
		t.Errorf("techStack = %v", vendors[0].Values(DimTechStack))
	}
	if !vendors[1].Has(DimIndustry, "manufacturing") {
		t.Errorf("industry = %v", vendors[1].Values(DimIndustry))
	}
}

func TestLoadYAML_InvalidRecord(t *testing.T) {
	_, err := LoadYAML(writeCatalogFixture(t, "vendors.yaml", "- id: \"\"\n  name: NoID\n"))
	if err == nil {
		t.Fatal("expected error for empty vendor ID")
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	fromYAML, err := Load(writeCatalogFixture(t, "vendors.yml", sampleYAML))
	if err != nil {
		t.Fatalf("Load yaml: %v", err)
	}
	if len(fromYAML) != 2 {
		t.Fatalf("yaml len = %d, want 2", len(fromYAML))
	}

	fromCSV, err := Load(writeCatalogFixture(t, "vendors.csv", sampleCSV))
	if err != nil {
		t.Fatalf("Load csv: %v", err)
	}
	if len(fromCSV) != 3 {
		t.Fatalf("csv len = %d, want 3", len(fromCSV))
	}
}
