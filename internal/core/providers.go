package core

import (
	"context"
	"errors"
)

// Returned when the corresponding capability has no credentials configured.
// Callers disable the capability at the call site instead of failing the
// whole pipeline.
var (
	ErrChatUnavailable      = errors.New("chat provider not configured")
	ErrEmbeddingUnavailable = errors.New("embedding provider not configured")
)

// ChatOptions override the configured defaults per call. A nil Temperature
// means "use the default"; a pointer to 0 requests deterministic sampling.
type ChatOptions struct {
	Model       string
	Temperature *float32
	MaxTokens   int
}

type Reply struct {
	Text      string
	Model     string
	Tokens    int
	LatencyMs int64
}

type ChatProvider interface {
	GetReply(ctx context.Context, messages []Message, opts ChatOptions) (Reply, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
