package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/stridelabs/coachd/pkg/log"
)

type OpenAIConfig struct {
	// APIKey is deliberately not required: an empty key disables the chat
	// and embedding capabilities at the call site instead of failing boot.
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`

	Model          string `env:"COACHD_MODEL" envDefault:"gpt-4o"`
	FallbackModel  string `env:"COACHD_FALLBACK_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel string `env:"COACHD_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`

	Temperature float32 `env:"COACHD_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"COACHD_MAX_TOKENS" envDefault:"700"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}
