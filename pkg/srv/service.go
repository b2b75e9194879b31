package srv

import (
	"context"

	"github.com/stridelabs/coachd/pkg/log"
)

// Service is anything with a lifecycle: background workers, transports,
// resource cleanups. Start blocks until the context is canceled.
type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices launches every service on its own goroutine. A service that
// fails to start takes the process down; the workers are not optional.
func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices waits for cancellation, then shuts services down in
// reverse registration order. Dependencies are registered before their
// dependents, so a consumer (the audit worker draining its queue) always
// finishes before the resource it writes to (the database) is closed.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
