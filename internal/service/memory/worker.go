package memory

import (
	"context"
	"time"

	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
	"github.com/stridelabs/coachd/pkg/retry"
)

const (
	backfillBatchSize    = 25
	backfillPollInterval = 30 * time.Second
)

// BackfillWorker opportunistically embeds coaching logs that have no stored
// vector yet.
type BackfillWorker struct {
	logs      core.LogsRepository
	embs      core.EmbeddingsRepository
	embedder  core.Embedder
	retrier   *retry.Retrier
	interval  time.Duration
	batchSize int
}

func NewBackfillWorker(logs core.LogsRepository, embs core.EmbeddingsRepository, embedder core.Embedder) *BackfillWorker {
	return &BackfillWorker{
		logs:      logs,
		embs:      embs,
		embedder:  embedder,
		retrier: retry.NewRetrier(&retry.Config{
			MaxRetries:    2,
			BackoffFactor: 2.0,
			InitialDelay:  200 * time.Millisecond,
			MaxDelay:      2 * time.Second,
			Jitter:        50 * time.Millisecond,
		}),
		interval:  backfillPollInterval,
		batchSize: backfillBatchSize,
	}
}

func (w *BackfillWorker) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx).With().Str("component", "embedding_backfill").Logger()
	logger.Info().Msg("starting embedding backfill worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down embedding backfill worker")
			return nil
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				logger.Error().Err(err).Msg("embedding backfill batch failed")
			}
		}
	}
}

func (w *BackfillWorker) Shutdown(ctx context.Context) error {
	return nil
}

func (w *BackfillWorker) processBatch(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	entries, err := w.logs.ListUnembedded(ctx, w.batchSize)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Text == "" {
			continue
		}

		var vec []float32
		err := w.retrier.Do(ctx, func() error {
			var embedErr error
			vec, embedErr = w.embedder.Embed(ctx, entry.Text)
			return embedErr
		})
		if err != nil {
			// ErrEmbeddingUnavailable lands here too; skip and move on.
			logger.Warn().Err(err).Int64("log_id", entry.ID).Msg("failed to embed log")
			continue
		}

		emb := core.LogEmbedding{
			UserID:    entry.UserID,
			LogType:   entry.LogType,
			LogID:     entry.ID,
			Text:      entry.Text,
			Vector:    vec,
			CreatedAt: entry.CreatedAt,
		}
		if err := w.embs.SaveEmbedding(ctx, emb); err != nil {
			logger.Error().Err(err).Int64("log_id", entry.ID).Msg("failed to save log embedding")
		}
	}
	return nil
}
