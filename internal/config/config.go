package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mannequin/internal/domain/valueobjects"
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
	BackendStub   = "stub"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	SynthesisBackend   string
	APIKey             string
	GeminiModel        string
	GeminiBaseURL      string
	VertexProject      string
	VertexLocation     string
	StubDelay          time.Duration
	TryOnInstruction   string
	DefaultLocale      string
	ProgressInterval   time.Duration
	SessionIdleTimeout time.Duration
	UploadMemoryBytes  int64
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
}

// Load reads .env.<APP_ENV> or .env when present, then builds the config from the environment.
func Load() (*Config, error) {
	loadDotEnv()
	return LoadConfig()
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		SynthesisBackend:   strings.ToLower(getEnv("SYNTHESIS_BACKEND", BackendGemini)),
		APIKey:             getEnv("API_KEY", os.Getenv("GEMINI_API_KEY")),
		GeminiModel:        getEnv("GEMINI_MODEL", valueobjects.DefaultModel),
		GeminiBaseURL:      os.Getenv("GEMINI_BASE_URL"),
		VertexProject:      getEnv("VERTEX_PROJECT", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		VertexLocation:     getEnv("VERTEX_LOCATION", "us-central1"),
		StubDelay:          getEnvDuration("STUB_DELAY", 0),
		TryOnInstruction:   getEnv("TRYON_INSTRUCTION", valueobjects.DefaultInstruction),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
		ProgressInterval:   getEnvDuration("PROGRESS_INTERVAL", 3*time.Second),
		SessionIdleTimeout: getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		UploadMemoryBytes:  int64(getEnvInt("UPLOAD_MEMORY_BYTES", 32<<20)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 180)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	switch cfg.SynthesisBackend {
	case BackendGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("API_KEY is required for the %s backend", BackendGemini)
		}
	case BackendVertex:
		if cfg.VertexProject == "" {
			return nil, fmt.Errorf("VERTEX_PROJECT is required for the %s backend", BackendVertex)
		}
	case BackendStub:
	default:
		return nil, fmt.Errorf("unknown SYNTHESIS_BACKEND %q", cfg.SynthesisBackend)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func loadDotEnv() {
	env := os.Getenv("APP_ENV")
	if env != "" {
		if err := godotenv.Load(".env." + env); err == nil {
			return
		}
	}
	// Missing files are fine; the process environment is authoritative.
	_ = godotenv.Load()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
