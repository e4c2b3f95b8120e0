package extract

import (
	"context"
	"fmt"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/config"
)

// NewCompleter builds the backend named by cfg.LLMProvider. The returned
// close func releases its connections.
func NewCompleter(ctx context.Context, cfg config.Config) (Completer, func(), error) {
	switch cfg.LLMProvider {
	case "openai":
		c := NewOpenAICompleter(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		return c, c.Close, nil
	case "anthropic":
		c := NewClaudeCompleter(cfg.AnthropicAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		return c, c.Close, nil
	case "vertex":
		c, err := NewVertexCompleter(ctx, cfg.VertexProject, cfg.VertexRegion, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

// RecovererConfigFrom maps service config onto recoverer settings.
func RecovererConfigFrom(cfg config.Config) RecovererConfig {
	return RecovererConfig{
		MaxAttempts:  cfg.LLMMaxAttempts,
		RetryDelay:   cfg.LLMRetryDelay,
		StrictSchema: cfg.StrictSchema,
	}
}
