package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/config"
)

// NewClient builds the generation and embedding clients for the configured
// provider. Claude has no embedding endpoint, so its embedder is nil and the
// caller decides whether that is acceptable.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, EmbedderClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "groq":
		// Groq exposes an OpenAI-compatible API; only the base URL differs.
		c := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.BaseURL)
		return c, c, nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	case "claude":
		c := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		return c, nil, nil

	case "ollama":
		// Ollama speaks the OpenAI API under /v1; the key is a dummy.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		c := NewOpenAIClient(apiKey, cfg.Model, cfg.EmbeddingModel, baseURL)
		return c, c, nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
