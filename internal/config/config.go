/*
Package config builds the process-wide configuration once at startup.
Values come from the environment, optionally seeded from a .env file, and the
resulting Config is passed by reference to every component that needs it.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when no completion-service credential is configured.
var ErrMissingCredential = errors.New("completion service credential is not set (SECRET)")

// Supported completion providers.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// LLMConfig holds everything needed to reach the text-completion service.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration

	// MaxAttempts is the number of tries per completion call. 1 disables retries.
	MaxAttempts int
}

// RateLimitConfig bounds how often a single client IP may submit a query.
type RateLimitConfig struct {
	RPS     float64
	Burst   int
	Clients int
}

// Config is the root configuration object.
type Config struct {
	Env         string
	Port        int
	LogLevel    string
	PromptsFile string

	LLM       LLMConfig
	RateLimit RateLimitConfig

	// TrustedProxies are the peer ranges whose X-Forwarded-For is believed.
	// Loopback is always trusted.
	TrustedProxies []*net.IPNet

	// AllowedOrigins lists extra browser origins (scheme://host[:port]) that
	// may open the websocket. The serving host is always allowed.
	AllowedOrigins []string
}

// Default returns a Config with every optional value filled in.
// The credential is intentionally left empty.
func Default() Config {
	return Config{
		Env:      "development",
		Port:     8080,
		LogLevel: "info",
		LLM: LLMConfig{
			Provider:    ProviderOpenAI,
			Model:       "gpt-3.5-turbo",
			Temperature: 0.9,
			MaxTokens:   2048,
			Timeout:     60 * time.Second,
			MaxAttempts: 1,
		},
		RateLimit: RateLimitConfig{
			RPS:     0.5,
			Burst:   5,
			Clients: 4096,
		},
	}
}

// Load reads an optional .env file and then the environment.
// A missing credential is reported as ErrMissingCredential.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := Default()

	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.PromptsFile = os.Getenv("PROMPTS_FILE")

	// SECRET is the variable name the hosted app has always used.
	cfg.LLM.APIKey = firstNonEmpty(os.Getenv("SECRET"), os.Getenv("LLM_API_KEY"))
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	} else if cfg.LLM.Provider != ProviderOpenAI {
		cfg.LLM.Model = defaultModel(cfg.LLM.Provider)
	}
	cfg.LLM.BaseURL = os.Getenv("LLM_BASE_URL")

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 32)
		if err != nil || t < 0 || t > 2 {
			return nil, fmt.Errorf("invalid LLM_TEMPERATURE %q", v)
		}
		cfg.LLM.Temperature = float32(t)
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid LLM_MAX_TOKENS %q", v)
		}
		cfg.LLM.MaxTokens = n
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT %q", v)
		}
		cfg.LLM.Timeout = d
	}
	if v := os.Getenv("LLM_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid LLM_MAX_ATTEMPTS %q", v)
		}
		cfg.LLM.MaxAttempts = n
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q", v)
		}
		cfg.RateLimit.RPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q", v)
		}
		cfg.RateLimit.Burst = n
	}
	if v := os.Getenv("RATE_LIMIT_CLIENTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_CLIENTS %q", v)
		}
		cfg.RateLimit.Clients = n
	}

	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		for _, item := range splitList(v) {
			_, ipNet, err := net.ParseCIDR(item)
			if err != nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", item, err)
			}
			cfg.TrustedProxies = append(cfg.TrustedProxies, ipNet)
		}
	}
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants other packages rely on.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return ErrMissingCredential
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM model must not be empty")
	}
	return nil
}

// IsProduction reports whether logs should be emitted as JSON.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	default:
		return "gpt-3.5-turbo"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
