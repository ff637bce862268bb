package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Recommend: RecommendConfig{
			Dimensions: []DimensionConfig{
				{Key: "techStack", Weight: 60, Multi: true},
				{Key: "industry", Weight: 40},
			},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_DefaultPageSizeExceedsMax(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultPageSize = 200
	cfg.Search.MaxPageSize = 100
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default page size above max")
	}
}

func TestValidate_NegativeTopN(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.TopN = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative top_n")
	}
}

func TestValidate_DimensionWeightsMustSumTo100(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.Dimensions = []DimensionConfig{
		{Key: "techStack", Weight: 50},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for weights summing to 50")
	}
	if !strings.Contains(err.Error(), "sum to 100") {
		t.Errorf("unexpected error message: %q", err)
	}
}

func TestValidate_DuplicateDimension(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.Dimensions = []DimensionConfig{
		{Key: "techStack", Weight: 50},
		{Key: "techStack", Weight: 50},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for duplicate dimension key")
	}
}

func TestValidate_EmptyDimensionTableAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.Dimensions = nil
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty dimension table should fall back to the stock one: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	if cfg.Search.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d", cfg.Search.MaxPageSize)
	}
	if cfg.Search.FieldBoost != 2.0 {
		t.Errorf("FieldBoost = %v", cfg.Search.FieldBoost)
	}
	if cfg.Search.SnippetLength != 160 {
		t.Errorf("SnippetLength = %d", cfg.Search.SnippetLength)
	}
	if cfg.Search.TimeoutSec != 15 {
		t.Errorf("TimeoutSec = %d", cfg.Search.TimeoutSec)
	}
	if cfg.Recommend.RelatedLimit != 5 {
		t.Errorf("RelatedLimit = %d", cfg.Recommend.RelatedLimit)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("ShutdownSec = %d", cfg.HTTP.ShutdownSec)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("VENDORLENS_TEST_KEY", "secret")
	got := string(expandEnvVars([]byte("api_key: ${VENDORLENS_TEST_KEY}")))
	if got != "api_key: secret" {
		t.Errorf("expanded = %q", got)
	}
}

func TestExpandEnvVars_Default(t *testing.T) {
	got := string(expandEnvVars([]byte("port: ${VENDORLENS_UNSET_PORT:-8080}")))
	if got != "port: 8080" {
		t.Errorf("expanded = %q", got)
	}
}
