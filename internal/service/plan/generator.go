package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stridelabs/coachd/internal/config"
	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/internal/service/coach"
	"github.com/stridelabs/coachd/pkg/log"
)

var ErrPreviewInProduction = errors.New("preview mode is not allowed in production")

const (
	planTemperature = 0.4
	planMaxTokens   = 1500
)

// Options control one regeneration. Zero value means persist the result.
type Options struct {
	// PreviewMode generates without persisting. Rejected in production.
	PreviewMode bool
	// SkipSave suppresses persistence even outside preview mode.
	SkipSave bool
}

// Generator produces versioned coaching plans from the profile and the last
// week of wellness data. A model failure or malformed plan degrades to a
// deterministic fallback plan; the caller always gets a valid plan back
// unless the profile is missing.
type Generator struct {
	cfg      *config.AppConfig
	invoker  core.ChatProvider
	profiles core.ProfilesRepository
	logs     core.LogsRepository
	plans    core.PlansRepository
	audit    *coach.AuditWorker
	now      func() time.Time
}

func NewGenerator(
	cfg *config.AppConfig,
	invoker core.ChatProvider,
	profiles core.ProfilesRepository,
	logs core.LogsRepository,
	plans core.PlansRepository,
	audit *coach.AuditWorker,
) *Generator {
	return &Generator{
		cfg:      cfg,
		invoker:  invoker,
		profiles: profiles,
		logs:     logs,
		plans:    plans,
		audit:    audit,
		now:      time.Now,
	}
}

func (g *Generator) Regenerate(ctx context.Context, userID string, opts Options) (core.PlanRecord, error) {
	logger := log.FromCtx(ctx)
	correlationID := uuid.NewString()
	started := g.now()

	if opts.PreviewMode && g.cfg.IsProduction() {
		return core.PlanRecord{}, ErrPreviewInProduction
	}

	profile, err := g.profiles.Get(ctx, userID)
	if err != nil {
		return core.PlanRecord{}, fmt.Errorf("load profile for plan: %w", err)
	}

	snapshot := buildSnapshot(ctx, g.logs, userID, g.now())

	data, fallbackReason := g.generate(ctx, profile, snapshot)
	method := core.GenerationMethodAI
	if fallbackReason != "" {
		logger.Warn().
			Str("correlation_id", correlationID).
			Str("reason", fallbackReason).
			Msg("falling back to deterministic plan")
		data = FallbackPlan(profile)
		method = core.GenerationMethodFallback
	}

	validationErrors := validatePlan(data)

	rec := core.PlanRecord{
		UserID:           userID,
		Plan:             data,
		GenerationMethod: method,
		FallbackReason:   fallbackReason,
		IsValid:          len(validationErrors) == 0,
		ValidationErrors: validationErrors,
		CreatedAt:        g.now().UTC(),
	}
	if snap, err := json.Marshal(snapshot); err == nil {
		rec.WellnessSnapshot = snap
	}
	if prof, err := json.Marshal(profile); err == nil {
		rec.ProfileSnapshot = prof
	}

	if !opts.PreviewMode && !opts.SkipSave {
		if err := g.plans.InsertNext(ctx, &rec); err != nil {
			return core.PlanRecord{}, fmt.Errorf("persist plan: %w", err)
		}
	}

	g.emitAudit(ctx, correlationID, rec, time.Since(started))
	return rec, nil
}

// generate runs the model path and validates the result. It returns the plan
// and an empty reason on success, or a nil plan and a human-readable reason.
func (g *Generator) generate(ctx context.Context, profile core.Profile, snapshot WellnessSnapshot) (core.PlanData, string) {
	messages := planMessages(profile, snapshot)
	temperature := float32(planTemperature)
	reply, err := g.invoker.GetReply(ctx, messages, core.ChatOptions{
		Temperature: &temperature,
		MaxTokens:   planMaxTokens,
	})
	if err != nil {
		return nil, fmt.Sprintf("model invocation failed: %v", err)
	}

	data, err := parsePlan(reply.Text)
	if err != nil {
		return nil, fmt.Sprintf("plan response unparseable: %v", err)
	}
	if errs := validatePlan(data); len(errs) > 0 {
		return nil, "plan failed validation: " + strings.Join(errs, "; ")
	}
	return data, ""
}

func (g *Generator) emitAudit(ctx context.Context, correlationID string, rec core.PlanRecord, elapsed time.Duration) {
	if g.audit == nil {
		return
	}
	var issues json.RawMessage
	if len(rec.ValidationErrors) > 0 {
		if data, err := json.Marshal(rec.ValidationErrors); err == nil {
			issues = data
		}
	}
	g.audit.Enqueue(ctx, core.AuditEvent{
		CorrelationID: correlationID,
		EventType:     "plan_generation",
		Operation:     "regenerate",
		Status:        rec.GenerationMethod,
		DurationMs:    elapsed.Milliseconds(),
		Issues:        issues,
	})
}
