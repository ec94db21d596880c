package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/2025DataEdu/project-5/internal/domain"
)

// Vector search backends.
const (
	BackendPGVector = "pgvector"
	BackendChromem  = "chromem"
)

// Config holds the regulation search service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	AI        AIConfig        `yaml:"ai"`
	Search    SearchConfig    `yaml:"search"`
	Indexing  IndexingConfig  `yaml:"indexing"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Auth      AuthConfig      `yaml:"auth"`
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

// DatabaseConfig holds relational store settings.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"` // postgres, sqlite (default: postgres)
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	SlowQueryMs  int    `yaml:"slow_query_ms"`
	Migrate      bool   `yaml:"migrate"`
}

// CacheConfig holds the optional query embedding cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	WriteTimeoutMs   int      `yaml:"write_timeout_ms"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// AIConfig holds the chat completion settings for AI guidance.
type AIConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSec  int     `yaml:"timeout_sec"`
}

// SearchConfig holds keyword and smart search settings.
type SearchConfig struct {
	SmartEnabled          bool    `yaml:"smart_enabled"`
	VectorBackend         string  `yaml:"vector_backend"` // pgvector, chromem (default: by database driver)
	Threshold             float64 `yaml:"threshold"`
	Limit                 int     `yaml:"limit"`
	RegistryLimit         int     `yaml:"registry_limit"`
	RegistryFallbackLimit int     `yaml:"registry_fallback_limit"`
	PDFLimit              int     `yaml:"pdf_limit"`
	EmployeeLimit         int     `yaml:"employee_limit"`
}

// IndexingConfig holds embedding generation settings.
type IndexingConfig struct {
	BatchSize    int  `yaml:"batch_size"`
	Concurrency  int  `yaml:"concurrency"`
	DelayMs      int  `yaml:"delay_ms"`
	MaxErrors    int  `yaml:"max_errors"`
	RefreshStale bool `yaml:"refresh_stale"`
}

// AnalyticsConfig holds background analytics writer settings.
type AnalyticsConfig struct {
	PoolSize       int `yaml:"pool_size"`
	TaskTimeoutSec int `yaml:"task_timeout_sec"`
}

// Delay returns the pause between embedding sub-batches.
func (c IndexingConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.SlowQueryMs <= 0 {
		c.Database.SlowQueryMs = 1000
	}

	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "regsearch:"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 24 * 60 * 60
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}

	if c.Embedding.Model == "" {
		c.Embedding.Model = domain.DefaultEmbeddingModel
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = domain.DefaultEmbeddingDimensions
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 30
	}

	if c.AI.APIKey == "" {
		c.AI.APIKey = c.Embedding.APIKey
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4o-mini"
	}
	if c.AI.Temperature <= 0 {
		c.AI.Temperature = 0.7
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = 500
	}
	if c.AI.TimeoutSec <= 0 {
		c.AI.TimeoutSec = 30
	}

	if c.Search.VectorBackend == "" {
		c.Search.VectorBackend = BackendChromem
		if c.Database.Driver == "postgres" {
			c.Search.VectorBackend = BackendPGVector
		}
	}
	if c.Search.Threshold <= 0 {
		c.Search.Threshold = 0.8
	}
	if c.Search.Limit <= 0 {
		c.Search.Limit = 30
	}
	if c.Search.RegistryLimit <= 0 {
		c.Search.RegistryLimit = 30
	}
	if c.Search.RegistryFallbackLimit <= 0 {
		c.Search.RegistryFallbackLimit = 15
	}
	if c.Search.PDFLimit <= 0 {
		c.Search.PDFLimit = 30
	}
	if c.Search.EmployeeLimit <= 0 {
		c.Search.EmployeeLimit = 15
	}

	if c.Indexing.BatchSize <= 0 {
		c.Indexing.BatchSize = 50
	}
	if c.Indexing.Concurrency <= 0 {
		c.Indexing.Concurrency = 3
	}
	if c.Indexing.DelayMs < 0 {
		c.Indexing.DelayMs = 0
	}
	if c.Indexing.MaxErrors <= 0 {
		c.Indexing.MaxErrors = 50
	}

	if c.Analytics.PoolSize <= 0 {
		c.Analytics.PoolSize = 4
	}
	if c.Analytics.TaskTimeoutSec <= 0 {
		c.Analytics.TaskTimeoutSec = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if !slices.Contains([]string{"postgres", "sqlite"}, c.Database.Driver) {
		return fmt.Errorf("database.driver must be \"postgres\" or \"sqlite\", got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache.enabled is true")
	}
	switch c.Search.VectorBackend {
	case BackendPGVector:
		if c.Database.Driver != "postgres" {
			return fmt.Errorf("search.vector_backend %q requires database.driver \"postgres\"", BackendPGVector)
		}
	case BackendChromem:
		// ok
	default:
		return fmt.Errorf(
			"search.vector_backend must be %q or %q, got %q",
			BackendPGVector, BackendChromem, c.Search.VectorBackend,
		)
	}
	if c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be between 0 and 1, got %v", c.Search.Threshold)
	}
	if c.Search.Limit > 100 {
		return fmt.Errorf("search.limit must be at most 100, got %d", c.Search.Limit)
	}
	if c.Search.SmartEnabled && c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.api_key is required when search.smart_enabled is true")
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
