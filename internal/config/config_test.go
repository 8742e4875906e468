package config

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"briefly/pkg/llm"
	"briefly/pkg/summary"

	"github.com/go-playground/assert/v2"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string {
		return m[key]
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{}))

	assert.Equal(t, nil, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, summary.DefaultModel, cfg.DefaultModel)
	assert.Equal(t, summary.DefaultModel, cfg.ArticleModel)
	assert.Equal(t, int64(1024), cfg.AnthropicMaxTokens)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"LLM_PROVIDER":         "anthropic",
		"ANTHROPIC_API_KEY":    "key",
		"DEFAULT_MODEL":        "claude-haiku-4-5",
		"ANTHROPIC_MAX_TOKENS": "512",
		"FETCH_TIMEOUT":        "5s",
		"FETCH_MAX_BYTES":      "1000",
		"HTTP_ADDR":            ":9090",
	}))

	assert.Equal(t, nil, err)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "claude-haiku-4-5", cfg.ArticleModel)
	assert.Equal(t, int64(512), cfg.AnthropicMaxTokens)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, int64(1000), cfg.FetchMaxBytes)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, summary.Options{DefaultModel: "claude-haiku-4-5", ArticleModel: "claude-haiku-4-5"}, cfg.SummaryOptions())
}

func TestFromEnvAnthropicDefaultModel(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"LLM_PROVIDER":      "anthropic",
		"ANTHROPIC_API_KEY": "key",
	}))

	assert.Equal(t, nil, err)
	assert.Equal(t, llm.DefaultAnthropicModel, cfg.DefaultModel)
	assert.Equal(t, llm.DefaultAnthropicModel, cfg.ArticleModel)
}

func TestAnthropicProviderSendsAnthropicModel(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"model":       req.Model,
			"content":     []map[string]interface{}{{"type": "text", "text": "Neutral."}},
			"stop_reason": "end_turn",
			"usage":       map[string]interface{}{"input_tokens": 1, "output_tokens": 1},
		})
	}))
	defer srv.Close()

	cfg, err := FromEnv(envFrom(map[string]string{
		"LLM_PROVIDER":      "anthropic",
		"ANTHROPIC_API_KEY": "key",
		"LLM_BASE_URL":      srv.URL + "/",
	}))
	assert.Equal(t, nil, err)

	inv, err := NewInvoker(cfg)
	assert.Equal(t, nil, err)

	svc := summary.NewService(inv, NewFetcher(cfg), cfg.SummaryOptions())
	got, err := svc.AnalyzeSentiment(context.Background(), "hello", "")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Neutral.", got)
	assert.Equal(t, llm.DefaultAnthropicModel, gotModel)
}

func TestFromEnvInvalidValues(t *testing.T) {
	tests := []map[string]string{
		{"FETCH_TIMEOUT": "soon"},
		{"FETCH_MAX_BYTES": "lots"},
		{"ANTHROPIC_MAX_TOKENS": "1.5"},
	}

	for _, env := range tests {
		_, err := FromEnv(envFrom(env))
		assert.NotEqual(t, nil, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAIAPIKey: "k"}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, AnthropicAPIKey: "k"}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic, OpenAIAPIKey: "k"}, true},
		{"unknown provider", Config{Provider: "other", OpenAIAPIKey: "k"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestNewInvoker(t *testing.T) {
	inv, err := NewInvoker(&Config{Provider: ProviderAnthropic, AnthropicAPIKey: "k"})
	assert.Equal(t, nil, err)
	_, ok := inv.(*llm.AnthropicClient)
	assert.Equal(t, true, ok)

	inv, err = NewInvoker(&Config{Provider: ProviderOpenAI, OpenAIAPIKey: "k"})
	assert.Equal(t, nil, err)
	_, ok = inv.(*llm.OpenAIClient)
	assert.Equal(t, true, ok)

	_, err = NewInvoker(&Config{Provider: ProviderOpenAI})
	assert.NotEqual(t, nil, err)
}
