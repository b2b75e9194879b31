package coach

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
)

const auditWriteTimeout = 5 * time.Second

// AuditWorker persists audit events off the response path. Enqueue never
// blocks; the queue is drained on shutdown so in-flight events are not
// silently dropped on process exit.
type AuditWorker struct {
	repo core.AuditRepository
	ch   chan core.AuditEvent
	done chan struct{}
}

func NewAuditWorker(repo core.AuditRepository, queueSize int) *AuditWorker {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &AuditWorker{
		repo: repo,
		ch:   make(chan core.AuditEvent, queueSize),
		done: make(chan struct{}),
	}
}

// Enqueue hands an event to the worker without blocking the caller. A full
// queue drops the event with a log line; auditing never delays a response.
func (w *AuditWorker) Enqueue(ctx context.Context, ev core.AuditEvent) {
	select {
	case w.ch <- ev:
	default:
		log.FromCtx(ctx).Warn().
			Str("correlation_id", ev.CorrelationID).
			Msg("audit queue full, dropping event")
	}
}

func (w *AuditWorker) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx).With().Str("component", "audit_worker").Logger()
	logger.Info().Msg("starting audit worker")

	for {
		select {
		case <-ctx.Done():
			w.drain(&logger)
			close(w.done)
			return nil
		case ev := <-w.ch:
			w.write(&logger, ev)
		}
	}
}

// Shutdown waits for the drain triggered by context cancellation.
func (w *AuditWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.done:
	case <-time.After(auditWriteTimeout * 2):
	}
	return nil
}

func (w *AuditWorker) drain(logger *zerolog.Logger) {
	for {
		select {
		case ev := <-w.ch:
			w.write(logger, ev)
		default:
			logger.Info().Msg("audit queue drained")
			return
		}
	}
}

// write uses its own deadline: the request context that produced the event
// may already be gone.
func (w *AuditWorker) write(logger *zerolog.Logger, ev core.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()

	if err := w.repo.AddEvent(ctx, ev); err != nil {
		// An audit failure is logged but never surfaces to the caller.
		logger.Error().Err(err).
			Str("correlation_id", ev.CorrelationID).
			Msg("failed to write audit event")
	}
}
