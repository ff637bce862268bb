package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ttcdx/vendorlens/internal/domain/vendor"
)

// Criteria dimension keys. These are the stable machine keys shared between
// vendor attributes, criteria payloads and the scoring weight table.
const (
	DimPriorities       = "priorities"
	DimDevelopmentStyle = "developmentStyle"
	DimCompanySize      = "companySize"
	DimTechStack        = "techStack"
	DimIndustry         = "industry"
	DimIPOwnership      = "ipOwnership"
	DimPartnership      = "partnership"
)

// Size bands for the companySize dimension.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Capability thresholds above which a numeric CSV column implies a tag.
const (
	awsCapabilityMin   = 3
	internalSupportMin = 4
	ipFlexibilityMin   = 3
)

// LoadCSV reads a vendors.csv into catalog vendors. List-valued columns use
// ";" separators; the numeric capability columns (aws_capability,
// internal_dev_support, ip_flexibility) enrich the tag sets above their
// thresholds, and employee_count derives the size band when none is given.
func LoadCSV(path string) ([]vendor.Vendor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	vendors, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return vendors, nil
}

// ParseCSV reads catalog rows from r. The first row is the header.
func ParseCSV(r io.Reader) ([]vendor.Vendor, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"id", "company_name"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var vendors []vendor.Vendor
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		v, err := vendorFromRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}

func vendorFromRow(row []string, col map[string]int) (vendor.Vendor, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	list := func(name string) []string { return splitList(field(name)) }
	num := func(name string) int {
		n, _ := strconv.Atoi(field(name))
		return n
	}

	attrs := map[string][]string{
		DimTechStack:        list("tech_stack"),
		DimDevelopmentStyle: list("development_styles"),
		DimIndustry:         list("industries"),
		DimPartnership:      list("partnership_modes"),
		DimPriorities:       list("strengths"),
	}

	if posture := field("ip_posture"); posture != "" {
		attrs[DimIPOwnership] = []string{posture}
	}

	if band := field("size_band"); band != "" {
		attrs[DimCompanySize] = []string{band}
	} else if count := num("employee_count"); count > 0 {
		attrs[DimCompanySize] = []string{sizeBand(count)}
	}

	// Capability scores imply tags the hand-maintained lists may omit.
	if num("aws_capability") >= awsCapabilityMin {
		attrs[DimTechStack] = appendUnique(attrs[DimTechStack], "aws")
	}
	if num("internal_dev_support") >= internalSupportMin {
		attrs[DimDevelopmentStyle] = appendUnique(attrs[DimDevelopmentStyle], "internal_support")
	}
	if num("ip_flexibility") >= ipFlexibilityMin {
		attrs[DimIPOwnership] = appendUnique(attrs[DimIPOwnership], "flexible")
	}

	for dim, vals := range attrs {
		if len(vals) == 0 {
			delete(attrs, dim)
		}
	}

	return vendor.New(field("id"), field("company_name"), attrs)
}

func sizeBand(employeeCount int) string {
	switch {
	case employeeCount <= 50:
		return SizeSmall
	case employeeCount <= 300:
		return SizeMedium
	default:
		return SizeLarge
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendUnique(vals []string, v string) []string {
	for _, existing := range vals {
		if existing == v {
			return vals
		}
	}
	return append(vals, v)
}
