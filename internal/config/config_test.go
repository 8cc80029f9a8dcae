package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Embedding: EmbeddingConfig{
			Vectorizer: VectorizerConfig{Provider: LocalProvider, Dimensions: 384},
		},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_UnknownVectorizerProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Vectorizer.Provider = "openai"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for provider missing from embedding.providers")
	}
}

func TestValidate_ProviderRequiresAPIKeyAndModel(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Providers = map[string]ProviderConfig{
		"openai": {BaseURL: "https://api.openai.com/v1/"},
	}
	cfg.Embedding.Vectorizer = VectorizerConfig{Provider: "openai", Model: "text-embedding-3-small"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing api_key")
	}

	cfg.Embedding.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
	cfg.Embedding.Vectorizer.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing model")
	}

	cfg.Embedding.Vectorizer.Model = "text-embedding-3-small"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for complete provider config: %v", err)
	}
}

func TestValidate_LocalProviderNeedsNoCredentials(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.SemanticWeight != 0.8 {
		t.Errorf("expected SemanticWeight=0.8, got %v", cfg.Search.SemanticWeight)
	}
	if cfg.Search.KeywordWeight != 0.5 {
		t.Errorf("expected KeywordWeight=0.5, got %v", cfg.Search.KeywordWeight)
	}
	if cfg.Search.HybridBonus != 0.3 {
		t.Errorf("expected HybridBonus=0.3, got %v", cfg.Search.HybridBonus)
	}
	if cfg.Search.KeywordScore != 0.7 {
		t.Errorf("expected KeywordScore=0.7, got %v", cfg.Search.KeywordScore)
	}
	if cfg.Search.ScoreThreshold != 0.1 {
		t.Errorf("expected ScoreThreshold=0.1, got %v", cfg.Search.ScoreThreshold)
	}
	if cfg.Search.CandidateCap != 1000 {
		t.Errorf("expected CandidateCap=1000, got %d", cfg.Search.CandidateCap)
	}
	if cfg.Refresh.PoolSize != 4 {
		t.Errorf("expected PoolSize=4, got %d", cfg.Refresh.PoolSize)
	}
	if cfg.Refresh.BatchLimit != 256 {
		t.Errorf("expected BatchLimit=256, got %d", cfg.Refresh.BatchLimit)
	}
	if cfg.Embedding.Vectorizer.Provider != LocalProvider {
		t.Errorf("expected default provider %q, got %q", LocalProvider, cfg.Embedding.Vectorizer.Provider)
	}
	if cfg.Embedding.Vectorizer.Dimensions != 384 {
		t.Errorf("expected Dimensions=384, got %d", cfg.Embedding.Vectorizer.Dimensions)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Search:   SearchConfig{SemanticWeight: 1.0, CandidateCap: 50},
		Embedding: EmbeddingConfig{
			Vectorizer: VectorizerConfig{Provider: "openai", Dimensions: 1536},
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.SemanticWeight != 1.0 {
		t.Errorf("expected SemanticWeight=1.0, got %v", cfg.Search.SemanticWeight)
	}
	if cfg.Search.CandidateCap != 50 {
		t.Errorf("expected CandidateCap=50, got %d", cfg.Search.CandidateCap)
	}
	if cfg.Embedding.Vectorizer.Provider != "openai" {
		t.Errorf("expected provider preserved, got %q", cfg.Embedding.Vectorizer.Provider)
	}
	if cfg.Embedding.Vectorizer.Dimensions != 1536 {
		t.Errorf("expected Dimensions=1536, got %d", cfg.Embedding.Vectorizer.Dimensions)
	}
}
