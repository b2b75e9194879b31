package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stridelabs/coachd/internal/config"
	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
)

const (
	maxTokensCeiling = 2000

	defaultSystemPrompt = "You are a supportive wellness coach. Keep replies " +
		"practical, kind and grounded. Never give medical advice; suggest a " +
		"healthcare professional for anything clinical."
)

// Invoker calls the chat-completion endpoint with clamped parameters and a
// single fallback-model escalation.
type Invoker struct {
	client        *openai.Client
	model         string
	fallbackModel string
	temperature   float32
	maxTokens     int
}

func NewInvoker(cfg *config.OpenAIConfig) *Invoker {
	if cfg.APIKey == "" {
		return &Invoker{}
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Invoker{
		client:        openai.NewClientWithConfig(clientCfg),
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
	}
}

func (i *Invoker) GetReply(ctx context.Context, messages []core.Message, opts core.ChatOptions) (core.Reply, error) {
	if i.client == nil {
		return core.Reply{}, core.ErrChatUnavailable
	}

	model, temperature, maxTokens := i.resolveOptions(opts)

	chatMsgs := toChatMessages(withDefaultSystemPrompt(messages))

	started := time.Now()
	resp, err := i.complete(ctx, model, chatMsgs, temperature, maxTokens)
	if err != nil {
		if !isModelUnavailable(err) || i.fallbackModel == "" || i.fallbackModel == model {
			return core.Reply{}, fmt.Errorf("chat completion failed: %w", err)
		}

		// One escalation to the fixed secondary model, only for the
		// unavailable/forbidden error class.
		log.FromCtx(ctx).Warn().
			Err(err).
			Str("model", model).
			Str("fallback_model", i.fallbackModel).
			Msg("primary model unavailable, escalating to fallback model")

		model = i.fallbackModel
		resp, err = i.complete(ctx, model, chatMsgs, temperature, maxTokens)
		if err != nil {
			return core.Reply{}, fmt.Errorf("fallback chat completion failed: %w", err)
		}
	}

	if len(resp.Choices) == 0 {
		return core.Reply{}, fmt.Errorf("chat completion returned no choices")
	}

	return core.Reply{
		Text:      resp.Choices[0].Message.Content,
		Model:     model,
		Tokens:    resp.Usage.TotalTokens,
		LatencyMs: time.Since(started).Milliseconds(),
	}, nil
}

// resolveOptions fills unset options from the configured defaults and
// clamps the result. An explicit zero temperature is honored.
func (i *Invoker) resolveOptions(opts core.ChatOptions) (string, float32, int) {
	model := opts.Model
	if model == "" {
		model = i.model
	}
	temperature := i.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = i.maxTokens
	}
	return model, clampTemperature(temperature), clampMaxTokens(maxTokens)
}

func (i *Invoker) complete(ctx context.Context, model string, msgs []openai.ChatCompletionMessage, temperature float32, maxTokens int) (openai.ChatCompletionResponse, error) {
	return i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

func withDefaultSystemPrompt(messages []core.Message) []core.Message {
	for _, m := range messages {
		if m.Role == core.RoleSystem {
			return messages
		}
	}
	out := make([]core.Message, 0, len(messages)+1)
	out = append(out, core.Message{Role: core.RoleSystem, Content: defaultSystemPrompt})
	return append(out, messages...)
}

func toChatMessages(messages []core.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}

func clampTemperature(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func clampMaxTokens(n int) int {
	if n > maxTokensCeiling {
		return maxTokensCeiling
	}
	return n
}

// isModelUnavailable reports whether the error belongs to the
// unavailable/forbidden class that warrants the single fallback-model retry.
func isModelUnavailable(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.HTTPStatusCode {
	case http.StatusForbidden, http.StatusNotFound, http.StatusServiceUnavailable:
		return true
	}
	if code, ok := apiErr.Code.(string); ok && code == "model_not_found" {
		return true
	}
	return false
}
