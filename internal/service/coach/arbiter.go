package coach

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/internal/service/gate"
	"github.com/stridelabs/coachd/internal/service/memory"
	"github.com/stridelabs/coachd/internal/service/prompt"
	"github.com/stridelabs/coachd/pkg/log"
)

// Outcomes of a coaching round-trip.
const (
	OutcomeDone     = "done"
	OutcomeFallback = "fallback"
)

type Response struct {
	Text           string `json:"text"`
	CorrelationID  string `json:"correlation_id"`
	Outcome        string `json:"outcome"`
	FallbackReason string `json:"fallback_reason,omitempty"`
	Model          string `json:"model,omitempty"`
}

// Arbiter orchestrates invocation and the two gates:
// Invoking -> SafetyCheck -> ToneCheck -> Done, short-circuiting to Fallback
// from any state. Gate-blocked text is discarded, never surfaced.
type Arbiter struct {
	assembler *memory.Assembler
	composer  *prompt.Composer
	invoker   core.ChatProvider
	safety    *gate.SafetyGate
	tone      *gate.ToneGate
	profiles  core.ProfilesRepository
	turns     core.TurnsRepository
	logs      core.LogsRepository
	index     *memory.Index
	audit     *AuditWorker
}

func NewArbiter(
	assembler *memory.Assembler,
	composer *prompt.Composer,
	invoker core.ChatProvider,
	profiles core.ProfilesRepository,
	turns core.TurnsRepository,
	logs core.LogsRepository,
	index *memory.Index,
	audit *AuditWorker,
) *Arbiter {
	return &Arbiter{
		assembler: assembler,
		composer:  composer,
		invoker:   invoker,
		safety:    gate.NewSafetyGate(),
		tone:      gate.NewToneGate(),
		profiles:  profiles,
		turns:     turns,
		logs:      logs,
		index:     index,
		audit:     audit,
	}
}

// Respond runs one full coaching round-trip. It never fails the caller: any
// pipeline failure degrades to a canned fallback message.
func (a *Arbiter) Respond(ctx context.Context, userID, message string) Response {
	logger := log.FromCtx(ctx)
	correlationID := uuid.NewString()
	started := time.Now()

	logger.Debug().
		Str("correlation_id", correlationID).
		Str("user_id", userID).
		Str("message", log.MaskText(message)).
		Msg("coaching request")

	var issues []gate.Issue
	resp := Response{CorrelationID: correlationID}

	// Profile is optional context here; a missing profile is not an error.
	profile, err := a.profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, core.ErrProfileNotFound) {
		logger.Warn().Err(err).Msg("failed to load profile")
	}

	memoryContext := a.assembler.BuildContext(ctx, userID, message)
	messages := a.composer.Compose(ctx, profile, memoryContext)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: message})

	reply, err := a.invoker.GetReply(ctx, messages, core.ChatOptions{})
	switch {
	case err != nil:
		reason := FallbackError
		if errors.Is(err, context.DeadlineExceeded) {
			reason = FallbackTimeout
		}
		logger.Error().Err(err).
			Str("correlation_id", correlationID).
			Str("reason", reason).
			Msg("model invocation failed")
		resp.Text = fallbackText(correlationID)
		resp.Outcome = OutcomeFallback
		resp.FallbackReason = reason

	default:
		resp.Model = reply.Model
		safetyRes := a.safety.Evaluate(reply.Text)
		toneRes := a.tone.Evaluate(reply.Text)
		issues = append(issues, safetyRes.Issues...)
		issues = append(issues, toneRes.Issues...)

		switch {
		case !safetyRes.Safe:
			logger.Warn().
				Str("correlation_id", correlationID).
				Int("issues", len(safetyRes.Issues)).
				Msg("safety gate blocked response")
			resp.Text = fallbackText(correlationID)
			resp.Outcome = OutcomeFallback
			resp.FallbackReason = FallbackUnsafe

		case !toneRes.Safe:
			logger.Warn().
				Str("correlation_id", correlationID).
				Int("issues", len(toneRes.Issues)).
				Str("sentiment", toneRes.Sentiment.Label).
				Msg("tone gate blocked response")
			resp.Text = fallbackText(correlationID)
			resp.Outcome = OutcomeFallback
			resp.FallbackReason = FallbackUnsafeTone

		default:
			resp.Text = reply.Text
			resp.Outcome = OutcomeDone
		}
	}

	a.recordTurn(ctx, userID, message, resp.Text)
	a.emitAudit(ctx, correlationID, resp, issues, time.Since(started))
	return resp
}

// recordTurn appends the conversation turn and opportunistically feeds the
// user message into the activity log and embedding index. All best-effort.
func (a *Arbiter) recordTurn(ctx context.Context, userID, message, response string) {
	logger := log.FromCtx(ctx)

	if err := a.turns.AddTurn(ctx, core.ConversationTurn{
		UserID:      userID,
		UserMessage: message,
		AIResponse:  response,
	}); err != nil {
		logger.Error().Err(err).Msg("failed to save conversation turn")
	}

	entry := core.CoachingLog{
		UserID:    userID,
		LogType:   core.LogTypeMessage,
		Text:      message,
		CreatedAt: time.Now().UTC(),
	}
	id, err := a.logs.AddLog(ctx, entry)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to save coaching log")
		return
	}
	entry.ID = id
	a.index.StoreLogEmbedding(ctx, entry)
}

func (a *Arbiter) emitAudit(ctx context.Context, correlationID string, resp Response, issues []gate.Issue, elapsed time.Duration) {
	status := resp.Outcome
	if resp.FallbackReason != "" {
		status = resp.FallbackReason
	}

	var issuesJSON json.RawMessage
	if len(issues) > 0 {
		if data, err := json.Marshal(issues); err == nil {
			issuesJSON = data
		}
	}

	a.audit.Enqueue(ctx, core.AuditEvent{
		CorrelationID: correlationID,
		EventType:     "coaching_response",
		Operation:     "respond",
		Status:        status,
		DurationMs:    elapsed.Milliseconds(),
		Issues:        issuesJSON,
	})
}
