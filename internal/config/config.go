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

// Config holds the orgdex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Refresh   RefreshConfig   `yaml:"refresh"`
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

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds ranking and fusion settings. The defaults reproduce the
// historical scoring behavior; see the search service for what each knob does.
type SearchConfig struct {
	SemanticWeight float64 `yaml:"semantic_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
	HybridBonus    float64 `yaml:"hybrid_bonus"`
	KeywordScore   float64 `yaml:"keyword_score"`
	ScoreThreshold float64 `yaml:"score_threshold"`
	// CandidateCap bounds how many organizations a single ranking pulls
	// from storage. A cost valve for full-scan similarity, not a
	// correctness rule; raise it along with corpus size.
	CandidateCap int `yaml:"candidate_cap"`
}

// RefreshConfig holds embedding refresh settings.
type RefreshConfig struct {
	PoolSize   int `yaml:"pool_size"`
	BatchLimit int `yaml:"batch_limit"`
}

// EmbeddingConfig holds embedding settings.
type EmbeddingConfig struct {
	Providers  map[string]ProviderConfig `yaml:"providers"`
	Vectorizer VectorizerConfig          `yaml:"vectorizer"`
}

// ProviderConfig holds settings for an OpenAI-compatible embedding endpoint.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// VectorizerConfig selects the active embedding model.
// Provider is either a key of embedding.providers or "local" for the
// deterministic in-process embedder.
type VectorizerConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// LocalProvider selects the in-process hash embedder.
const LocalProvider = "local"

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
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.SemanticWeight <= 0 {
		c.Search.SemanticWeight = 0.8
	}
	if c.Search.KeywordWeight <= 0 {
		c.Search.KeywordWeight = 0.5
	}
	if c.Search.HybridBonus <= 0 {
		c.Search.HybridBonus = 0.3
	}
	if c.Search.KeywordScore <= 0 {
		c.Search.KeywordScore = 0.7
	}
	if c.Search.ScoreThreshold <= 0 {
		c.Search.ScoreThreshold = 0.1
	}
	if c.Search.CandidateCap <= 0 {
		c.Search.CandidateCap = 1000
	}
	if c.Refresh.PoolSize <= 0 {
		c.Refresh.PoolSize = 4
	}
	if c.Refresh.BatchLimit <= 0 {
		c.Refresh.BatchLimit = 256
	}
	if c.Embedding.Vectorizer.Provider == "" {
		c.Embedding.Vectorizer.Provider = LocalProvider
	}
	if c.Embedding.Vectorizer.Dimensions <= 0 {
		c.Embedding.Vectorizer.Dimensions = 384
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}

	v := c.Embedding.Vectorizer
	if v.Provider != LocalProvider {
		p, ok := c.Embedding.Providers[v.Provider]
		if !ok {
			return fmt.Errorf("embedding.vectorizer.provider %q is not defined in embedding.providers", v.Provider)
		}
		if p.APIKey == "" {
			return fmt.Errorf("embedding.providers.%s.api_key is required", v.Provider)
		}
		if v.Model == "" {
			return fmt.Errorf("embedding.vectorizer.model is required for provider %q", v.Provider)
		}
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
