package coach

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridelabs/coachd/internal/config"
	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/internal/service/memory"
	"github.com/stridelabs/coachd/internal/service/prompt"
)

type fakeChat struct {
	text string
	err  error
}

func (f *fakeChat) GetReply(ctx context.Context, messages []core.Message, opts core.ChatOptions) (core.Reply, error) {
	if f.err != nil {
		return core.Reply{}, f.err
	}
	return core.Reply{Text: f.text, Model: "test-model"}, nil
}

type fakeEmbedder struct{}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, core.ErrEmbeddingUnavailable
}

type fakeProfiles struct{ profile *core.Profile }

func (f *fakeProfiles) Get(ctx context.Context, userID string) (core.Profile, error) {
	if f.profile == nil {
		return core.Profile{}, core.ErrProfileNotFound
	}
	return *f.profile, nil
}

func (f *fakeProfiles) Save(ctx context.Context, profile core.Profile) error { return nil }

type fakeTurns struct{ turns []core.ConversationTurn }

func (f *fakeTurns) AddTurn(ctx context.Context, turn core.ConversationTurn) error {
	f.turns = append(f.turns, turn)
	return nil
}

func (f *fakeTurns) RecentTurns(ctx context.Context, userID string, limit int) ([]core.ConversationTurn, error) {
	return nil, nil
}

type fakeLogs struct{ logs []core.CoachingLog }

func (f *fakeLogs) AddLog(ctx context.Context, entry core.CoachingLog) (int64, error) {
	f.logs = append(f.logs, entry)
	return int64(len(f.logs)), nil
}

func (f *fakeLogs) ListSince(ctx context.Context, userID, logType string, since time.Time) ([]core.CoachingLog, error) {
	return nil, nil
}

func (f *fakeLogs) ListUnembedded(ctx context.Context, limit int) ([]core.CoachingLog, error) {
	return nil, nil
}

type fakeDigests struct{}

func (f *fakeDigests) AddDigest(ctx context.Context, note core.WeeklyDigestNote) error { return nil }

func (f *fakeDigests) RecentDigests(ctx context.Context, userID string, limit int) ([]core.WeeklyDigestNote, error) {
	return nil, nil
}

type fakeEmbRepo struct{}

func (f *fakeEmbRepo) SaveEmbedding(ctx context.Context, emb core.LogEmbedding) error { return nil }

func (f *fakeEmbRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]core.LogEmbedding, error) {
	return nil, nil
}

type fakeAuditRepo struct{ events []core.AuditEvent }

func (f *fakeAuditRepo) AddEvent(ctx context.Context, ev core.AuditEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func newTestArbiter(t *testing.T, chat *fakeChat) (*Arbiter, *fakeTurns, *AuditWorker) {
	t.Helper()

	cfg := &config.AppConfig{RecentTurns: 5, ActivityDays: 7, WeeklyDigests: 4, RecallLimit: 3, RecallDaysBack: 90}
	turns := &fakeTurns{}
	logs := &fakeLogs{}
	index := memory.NewIndex(&fakeEmbedder{}, &fakeEmbRepo{})
	assembler := memory.NewAssembler(cfg, turns, &fakeDigests{}, logs, index)
	composer := prompt.NewComposer(prompt.NewBaseCache(filepath.Join(t.TempDir(), "COACH.md")), 0)
	audit := NewAuditWorker(&fakeAuditRepo{}, 16)

	return NewArbiter(assembler, composer, chat, &fakeProfiles{}, turns, logs, index, audit), turns, audit
}

func isFallbackMessage(s string) bool {
	for _, m := range FallbackMessages {
		if s == m {
			return true
		}
	}
	return false
}

func TestRespondCleanReply(t *testing.T) {
	a, turns, _ := newTestArbiter(t, &fakeChat{text: "Great week! Three workouts is solid progress."})
	resp := a.Respond(context.Background(), "u1", "how did I do this week?")

	assert.Equal(t, OutcomeDone, resp.Outcome)
	assert.Equal(t, "Great week! Three workouts is solid progress.", resp.Text)
	assert.Empty(t, resp.FallbackReason)
	assert.NotEmpty(t, resp.CorrelationID)

	require.Len(t, turns.turns, 1)
	assert.Equal(t, resp.Text, turns.turns[0].AIResponse)
}

func TestRespondUnsafeTextIsReplaced(t *testing.T) {
	a, turns, _ := newTestArbiter(t, &fakeChat{text: "You should skip breakfast to lose weight faster."})
	resp := a.Respond(context.Background(), "u1", "how do I lose weight?")

	assert.Equal(t, OutcomeFallback, resp.Outcome)
	assert.Equal(t, FallbackUnsafe, resp.FallbackReason)
	assert.True(t, isFallbackMessage(resp.Text), "expected a canned fallback, got %q", resp.Text)
	assert.NotContains(t, resp.Text, "skip breakfast")

	// The persisted turn carries the fallback, not the blocked text.
	require.Len(t, turns.turns, 1)
	assert.True(t, isFallbackMessage(turns.turns[0].AIResponse))
}

func TestRespondUnsafeToneIsReplaced(t *testing.T) {
	a, _, _ := newTestArbiter(t, &fakeChat{text: "No excuses, you failed because you're lazy."})
	resp := a.Respond(context.Background(), "u1", "I missed my workouts")

	assert.Equal(t, OutcomeFallback, resp.Outcome)
	// The safety gate passes; the tone gate blocks.
	assert.Equal(t, FallbackUnsafeTone, resp.FallbackReason)
	assert.True(t, isFallbackMessage(resp.Text))
}

func TestRespondModelError(t *testing.T) {
	a, _, _ := newTestArbiter(t, &fakeChat{err: errors.New("boom")})
	resp := a.Respond(context.Background(), "u1", "hello")

	assert.Equal(t, OutcomeFallback, resp.Outcome)
	assert.Equal(t, FallbackError, resp.FallbackReason)
	assert.True(t, isFallbackMessage(resp.Text))
}

func TestRespondModelTimeout(t *testing.T) {
	a, _, _ := newTestArbiter(t, &fakeChat{err: context.DeadlineExceeded})
	resp := a.Respond(context.Background(), "u1", "hello")

	assert.Equal(t, FallbackTimeout, resp.FallbackReason)
	assert.True(t, isFallbackMessage(resp.Text))
}

func TestRespondEmitsAudit(t *testing.T) {
	a, _, audit := newTestArbiter(t, &fakeChat{text: "Keep it up."})
	resp := a.Respond(context.Background(), "u1", "hi")

	// The event is queued even though the worker is not running.
	select {
	case ev := <-audit.ch:
		assert.Equal(t, resp.CorrelationID, ev.CorrelationID)
		assert.Equal(t, "coaching_response", ev.EventType)
		assert.Equal(t, OutcomeDone, ev.Status)
	default:
		t.Fatal("expected an audit event on the queue")
	}
}

func TestFallbackTextIsDeterministic(t *testing.T) {
	a := fallbackText("corr-1")
	b := fallbackText("corr-1")
	assert.Equal(t, a, b)
	assert.True(t, isFallbackMessage(a))
}
