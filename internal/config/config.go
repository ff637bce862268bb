package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the vendorlens API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Data      DataConfig      `yaml:"data"`
	Search    SearchConfig    `yaml:"search"`
	Recommend RecommendConfig `yaml:"recommend"`
	Reasoning ReasoningConfig `yaml:"reasoning"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DataConfig points at the pre-built corpus and catalog fixtures loaded at
// startup. Ingestion itself happens upstream.
type DataConfig struct {
	CorpusPath  string `yaml:"corpus_path"`
	CatalogPath string `yaml:"catalog_path"` // vendors.csv
}

// SearchConfig holds index and pagination settings.
type SearchConfig struct {
	DefaultPageSize int     `yaml:"default_page_size"`
	MaxPageSize     int     `yaml:"max_page_size"`
	FieldBoost      float64 `yaml:"field_boost"`    // title/tag weight over body
	SnippetLength   int     `yaml:"snippet_length"` // runes
	TimeoutSec      int     `yaml:"timeout_sec"`    // per-request budget
}

// RecommendConfig holds the scoring dimension table and response shaping.
type RecommendConfig struct {
	Dimensions   []DimensionConfig `yaml:"dimensions"`
	TopN         int               `yaml:"top_n"`         // 0 = all vendors
	RelatedLimit int               `yaml:"related_limit"` // side-search page size
}

// DimensionConfig is one questionnaire axis: machine key, weight, arity.
type DimensionConfig struct {
	Key    string `yaml:"key"`
	Weight int    `yaml:"weight"`
	Multi  bool   `yaml:"multi"`
}

// ReasoningConfig holds the optional prose provider. With an empty API key
// the deterministic template renderer is used.
type ReasoningConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.FieldBoost <= 0 {
		c.Search.FieldBoost = 2.0
	}
	if c.Search.SnippetLength <= 0 {
		c.Search.SnippetLength = 160
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 15
	}
	if c.Recommend.RelatedLimit <= 0 {
		c.Recommend.RelatedLimit = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("search.default_page_size %d exceeds search.max_page_size %d",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if c.Recommend.TopN < 0 {
		return fmt.Errorf("recommend.top_n must not be negative, got %d", c.Recommend.TopN)
	}
	seen := make(map[string]bool, len(c.Recommend.Dimensions))
	total := 0
	for _, d := range c.Recommend.Dimensions {
		if d.Key == "" {
			return fmt.Errorf("recommend.dimensions entries require a key")
		}
		if seen[d.Key] {
			return fmt.Errorf("recommend.dimensions has duplicate key %q", d.Key)
		}
		seen[d.Key] = true
		if d.Weight <= 0 {
			return fmt.Errorf("recommend.dimensions.%s: weight must be positive", d.Key)
		}
		total += d.Weight
	}
	if len(c.Recommend.Dimensions) > 0 && total != 100 {
		return fmt.Errorf("recommend.dimensions weights must sum to 100, got %d", total)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
