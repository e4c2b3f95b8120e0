package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string

	// Auth; empty disables it
	APIKey string

	// Completion backend
	LLMProvider    string // openai | anthropic | vertex
	LLMModel       string
	LLMTimeout     time.Duration
	LLMMaxAttempts int
	LLMRetryDelay  time.Duration
	StrictSchema   bool

	OpenAIBaseURL   string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	VertexProject   string
	VertexRegion    string

	// Async jobs
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration

	// Upload and document limits
	MaxUploadBytes int64
	MaxPages       int

	// PDF
	PDFFallbackPdftotext bool

	// Artifacts
	StoreBackend string // local | gcs | none
	OutputDir    string
	GCSBucket    string
	GCSPrefix    string

	LogLevel string
}

var defaults = map[string]any{
	"port":                   "8090",
	"llm_provider":           "openai",
	"llm_timeout":            "5m",
	"llm_max_attempts":       3,
	"llm_retry_delay":        "1s",
	"strict_schema":          false,
	"openai_base_url":        "http://localhost:11434/v1",
	"vertex_region":          "us-central1",
	"worker_count":           2,
	"max_queue_size":         50,
	"job_ttl":                "1h",
	"max_upload_bytes":       10485760, // 10MB
	"max_pages":              20,
	"pdf_fallback_pdftotext": true,
	"store_backend":          "local",
	"output_dir":             "resume",
	"gcs_prefix":             "resumes",
	"log_level":              "info",
}

// Default model per provider when LLM_MODEL is unset.
var defaultModels = map[string]string{
	"openai":    "gemma3:4b",
	"anthropic": "claude-sonnet-4-5-20250929",
	"vertex":    "gemini-1.5-pro",
}

// Load reads configuration from the environment.
func Load() Config {
	return fromViper(newViper())
}

// LoadFile reads a YAML/JSON/TOML config file; environment variables still
// take precedence over values in the file.
func LoadFile(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}
	return fromViper(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		Port:   v.GetString("port"),
		APIKey: v.GetString("api_key"),

		LLMProvider:    strings.ToLower(v.GetString("llm_provider")),
		LLMModel:       v.GetString("llm_model"),
		LLMTimeout:     v.GetDuration("llm_timeout"),
		LLMMaxAttempts: v.GetInt("llm_max_attempts"),
		LLMRetryDelay:  v.GetDuration("llm_retry_delay"),
		StrictSchema:   v.GetBool("strict_schema"),

		OpenAIBaseURL:   v.GetString("openai_base_url"),
		OpenAIAPIKey:    v.GetString("openai_api_key"),
		AnthropicAPIKey: v.GetString("anthropic_api_key"),
		VertexProject:   v.GetString("vertex_project"),
		VertexRegion:    v.GetString("vertex_region"),

		WorkerCount:  v.GetInt("worker_count"),
		MaxQueueSize: v.GetInt("max_queue_size"),
		JobTTL:       v.GetDuration("job_ttl"),

		MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		MaxPages:       v.GetInt("max_pages"),

		PDFFallbackPdftotext: v.GetBool("pdf_fallback_pdftotext"),

		StoreBackend: strings.ToLower(v.GetString("store_backend")),
		OutputDir:    v.GetString("output_dir"),
		GCSBucket:    v.GetString("gcs_bucket"),
		GCSPrefix:    v.GetString("gcs_prefix"),

		LogLevel: v.GetString("log_level"),
	}

	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModels[cfg.LLMProvider]
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 5 * time.Minute
	}
	if cfg.LLMMaxAttempts <= 0 {
		cfg.LLMMaxAttempts = 1
	}
	if cfg.LLMRetryDelay <= 0 {
		cfg.LLMRetryDelay = time.Second
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "resume"
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIBaseURL == "" {
			return fmt.Errorf("OPENAI_BASE_URL is required")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
	case "vertex":
		if c.VertexProject == "" {
			return fmt.Errorf("VERTEX_PROJECT is required")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (want openai, anthropic or vertex)", c.LLMProvider)
	}
	switch c.StoreBackend {
	case "local", "none":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORE_BACKEND=gcs")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}
