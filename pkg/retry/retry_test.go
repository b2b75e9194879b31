package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrierSucceedsFirstAttempt(t *testing.T) {
	r := NewDefaultRetrier()
	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRetrierRetriesUntilSuccess(t *testing.T) {
	r := NewRetrier(&Config{
		MaxRetries:    5,
		BackoffFactor: 1.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	})

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetrierExhaustsAttempts(t *testing.T) {
	r := NewRetrier(&Config{
		MaxRetries:    2,
		BackoffFactor: 1.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		Jitter:        time.Millisecond,
	})

	wantErr := errors.New("still failing")
	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetrierHonorsContextCancellation(t *testing.T) {
	r := NewRetrier(&Config{
		MaxRetries:    10,
		BackoffFactor: 2.0,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      time.Second,
		Jitter:        time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Do(ctx, func() error {
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
