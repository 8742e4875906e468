package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"briefly/pkg/article"
	"briefly/pkg/llm"
	"briefly/pkg/summary"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Provider           string
	OpenAIAPIKey       string
	AnthropicAPIKey    string
	LLMBaseURL         string
	DefaultModel       string
	ArticleModel       string
	AnthropicMaxTokens int64

	FetchTimeout   time.Duration
	FetchUserAgent string
	FetchMaxBytes  int64

	DatabaseURL string
	RedisURL    string

	FinnhubAPIKey      string
	AlphaVantageAPIKey string

	HTTPAddr    string
	FrontendURL string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Provider:           getOrDefault(getenv, "LLM_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:       getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:    getenv("ANTHROPIC_API_KEY"),
		LLMBaseURL:         getenv("LLM_BASE_URL"),
		FetchUserAgent:     getOrDefault(getenv, "FETCH_USER_AGENT", article.DefaultUserAgent),
		DatabaseURL:        getenv("DATABASE_URL"),
		RedisURL:           getenv("REDIS_URL"),
		FinnhubAPIKey:      getenv("FINNHUB_API_KEY"),
		AlphaVantageAPIKey: getenv("ALPHA_VANTAGE_API_KEY"),
		HTTPAddr:           getOrDefault(getenv, "HTTP_ADDR", ":8080"),
		FrontendURL:        getenv("FRONTEND_URL"),
	}
	cfg.DefaultModel = getOrDefault(getenv, "DEFAULT_MODEL", defaultModelFor(cfg.Provider))
	cfg.ArticleModel = getOrDefault(getenv, "ARTICLE_MODEL", cfg.DefaultModel)

	var err error
	if cfg.AnthropicMaxTokens, err = getInt(getenv, "ANTHROPIC_MAX_TOKENS", 1024); err != nil {
		return nil, err
	}
	if cfg.FetchMaxBytes, err = getInt(getenv, "FETCH_MAX_BYTES", article.DefaultMaxBytes); err != nil {
		return nil, err
	}

	cfg.FetchTimeout = article.DefaultTimeout
	if v := getenv("FETCH_TIMEOUT"); v != "" {
		if cfg.FetchTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks the settings needed to call a model.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY must be set")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY must be set")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
	return nil
}

func NewInvoker(c *Config) (llm.Invoker, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Provider == ProviderAnthropic {
		return llm.NewAnthropicClient(c.AnthropicAPIKey, c.LLMBaseURL, c.DefaultModel, c.AnthropicMaxTokens), nil
	}
	return llm.NewOpenAIClient(c.OpenAIAPIKey, c.LLMBaseURL, c.DefaultModel), nil
}

func NewFetcher(c *Config) *article.ReadabilityFetcher {
	return article.NewReadabilityFetcher(c.FetchTimeout, c.FetchUserAgent, c.FetchMaxBytes)
}

func (c *Config) SummaryOptions() summary.Options {
	return summary.Options{
		DefaultModel: c.DefaultModel,
		ArticleModel: c.ArticleModel,
	}
}

// defaultModelFor returns the model used when DEFAULT_MODEL is unset. Model
// names are provider specific.
func defaultModelFor(provider string) string {
	if provider == ProviderAnthropic {
		return llm.DefaultAnthropicModel
	}
	return llm.DefaultOpenAIModel
}

func getOrDefault(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(getenv func(string) string, key string, def int64) (int64, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
