package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/stridelabs/coachd/internal/config"
	"github.com/stridelabs/coachd/internal/core"
)

// EmbeddingClient delegates to the embedding endpoint. When no API key is
// configured every call returns core.ErrEmbeddingUnavailable; callers treat
// that as non-fatal.
type EmbeddingClient struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewEmbeddingClient(cfg *config.OpenAIConfig) *EmbeddingClient {
	if cfg.APIKey == "" {
		return &EmbeddingClient{}
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &EmbeddingClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  openai.EmbeddingModel(cfg.EmbeddingModel),
	}
}

func (e *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.client == nil {
		return nil, core.ErrEmbeddingUnavailable
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}
