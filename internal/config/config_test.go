package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "API_KEY",
	"LLM_PROVIDER", "LLM_MODEL", "LLM_TIMEOUT", "LLM_MAX_ATTEMPTS", "LLM_RETRY_DELAY", "STRICT_SCHEMA",
	"OPENAI_BASE_URL", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "VERTEX_PROJECT", "VERTEX_REGION",
	"WORKER_COUNT", "MAX_QUEUE_SIZE", "JOB_TTL",
	"MAX_UPLOAD_BYTES", "MAX_PAGES", "PDF_FALLBACK_PDFTOTEXT",
	"STORE_BACKEND", "OUTPUT_DIR", "GCS_BUCKET", "GCS_PREFIX", "LOG_LEVEL",
}

// cleanEnv blanks every key Load reads so the caller's shell does not leak
// into the test. Viper treats an empty variable as unset.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestCleanEnv_HidesShellValues(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-from-shell")
	t.Setenv("LLM_PROVIDER", "vertex")
	t.Setenv("PORT", "1234")
	cleanEnv(t)

	cfg := Load()
	if cfg.AnthropicAPIKey != "" || cfg.LLMProvider != "openai" || cfg.Port != "8090" {
		t.Errorf("shell values leaked: key=%q provider=%q port=%q", cfg.AnthropicAPIKey, cfg.LLMProvider, cfg.Port)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.LLMProvider != "openai" || cfg.LLMModel != "gemma3:4b" {
		t.Errorf("expected openai/gemma3:4b, got %s/%s", cfg.LLMProvider, cfg.LLMModel)
	}
	if cfg.OpenAIBaseURL != "http://localhost:11434/v1" {
		t.Errorf("unexpected base url %q", cfg.OpenAIBaseURL)
	}
	if cfg.LLMMaxAttempts != 3 || cfg.LLMRetryDelay != time.Second {
		t.Errorf("unexpected retry defaults: %d %v", cfg.LLMMaxAttempts, cfg.LLMRetryDelay)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("STRICT_SCHEMA", "true")
	t.Setenv("MAX_PAGES", "5")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.LLMProvider != "anthropic" {
		t.Errorf("expected provider lower-cased, got %q", cfg.LLMProvider)
	}
	if cfg.LLMModel != "claude-sonnet-4-5-20250929" {
		t.Errorf("expected anthropic default model, got %q", cfg.LLMModel)
	}
	if cfg.LLMTimeout != 90*time.Second {
		t.Errorf("expected 90s timeout, got %v", cfg.LLMTimeout)
	}
	if !cfg.StrictSchema || cfg.MaxPages != 5 {
		t.Errorf("unexpected strict=%v max_pages=%d", cfg.StrictSchema, cfg.MaxPages)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing ANTHROPIC_API_KEY to fail validation")
	}
}

func TestLoad_ClampsInvalidValues(t *testing.T) {
	cleanEnv(t)
	t.Setenv("WORKER_COUNT", "-1")
	t.Setenv("LLM_MAX_ATTEMPTS", "0")
	t.Setenv("MAX_UPLOAD_BYTES", "0")

	cfg := Load()
	if cfg.WorkerCount != 2 {
		t.Errorf("expected worker count clamped to 2, got %d", cfg.WorkerCount)
	}
	if cfg.LLMMaxAttempts != 1 {
		t.Errorf("expected attempts clamped to 1, got %d", cfg.LLMMaxAttempts)
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected upload limit clamped, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadFile(t *testing.T) {
	cleanEnv(t)
	path := filepath.Join(t.TempDir(), "resume.yaml")
	data := "llm_provider: vertex\nvertex_project: acme-cv\nstore_backend: none\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VERTEX_REGION", "europe-west1")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLMProvider != "vertex" || cfg.VertexProject != "acme-cv" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.VertexRegion != "europe-west1" {
		t.Errorf("expected env to override, got %q", cfg.VertexRegion)
	}
	if cfg.LLMModel != "gemini-1.5-pro" {
		t.Errorf("expected vertex default model, got %q", cfg.LLMModel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cleanEnv(t)
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"unknown provider", func(c *Config) { c.LLMProvider = "bard" }, true},
		{"gcs without bucket", func(c *Config) { c.StoreBackend = "gcs" }, true},
		{"gcs with bucket", func(c *Config) { c.StoreBackend = "gcs"; c.GCSBucket = "cvs" }, false},
		{"unknown store", func(c *Config) { c.StoreBackend = "s3" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
