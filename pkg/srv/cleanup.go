package srv

import "context"

// cleanupService turns a close function (database handle, log flusher) into
// a Service that only acts on shutdown.
type cleanupService struct {
	cleanup func() error
}

func (c *cleanupService) Start(ctx context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	if c.cleanup != nil {
		return c.cleanup()
	}
	return nil
}

// NewCleanup registers fn to run during shutdown. Register cleanups before
// the services that depend on them: shutdown runs in reverse order.
func NewCleanup(fn func() error) Service {
	return &cleanupService{cleanup: fn}
}
