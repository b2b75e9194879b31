package srv

import (
	"context"
	"testing"
)

type recordingService struct {
	name  string
	order *[]string
}

func (s *recordingService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *recordingService) Shutdown(ctx context.Context) error {
	*s.order = append(*s.order, s.name)
	return nil
}

func TestShutdownServicesReverseOrder(t *testing.T) {
	var order []string
	services := []Service{
		&recordingService{name: "db", order: &order},
		&recordingService{name: "audit", order: &order},
		&recordingService{name: "backfill", order: &order},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ShutdownServices(ctx, services)

	if len(order) != 3 {
		t.Fatalf("expected 3 shutdowns, got %d", len(order))
	}
	// Last registered shuts down first; the db cleanup goes last.
	if order[0] != "backfill" || order[1] != "audit" || order[2] != "db" {
		t.Fatalf("wrong shutdown order: %v", order)
	}
}

func TestCleanupRunsOnShutdownOnly(t *testing.T) {
	calls := 0
	c := NewCleanup(func() error {
		calls++
		return nil
	})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("cleanup ran on start")
	}
	if err := c.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 cleanup call, got %d", calls)
	}
}
