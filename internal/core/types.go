package core

import (
	"encoding/json"
	"time"
)

const (
	AppName    = "coachd"
	AppVersion = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationTurn is one user/coach exchange. Immutable once written.
type ConversationTurn struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	CreatedAt   time.Time `json:"created_at"`
}

// WeeklyDigestNote is a long-term summary authored by an external periodic
// job. This pipeline only reads them.
type WeeklyDigestNote struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

const DigestTypeWeeklySummary = "weekly_summary"

// Log types for coaching logs.
const (
	LogTypeWorkout = "workout"
	LogTypeMeal    = "meal"
	LogTypeSleep   = "sleep"
	LogTypeMood    = "mood"
	LogTypeMessage = "message"
)

// CoachingLog is a raw loggable event (workout, meal, sleep, mood or a free
// coaching message).
type CoachingLog struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	LogType   string    `json:"log_type"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// LogEmbedding ties a fixed-dimension vector to a coaching log. The
// dimensionality must match the embedding model's output size.
type LogEmbedding struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	LogType   string    `json:"log_type"`
	LogID     int64     `json:"log_id"`
	Text      string    `json:"text"`
	Vector    []float32 `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the coaching-relevant fields of a user profile.
type Profile struct {
	UserID             string   `json:"user_id"`
	Persona            string   `json:"persona,omitempty"`
	Why                string   `json:"why,omitempty"`
	Conditions         []string `json:"conditions,omitempty"`
	PregnancyOrRecover string   `json:"pregnancy_or_recovery,omitempty"`
	Injuries           []string `json:"injuries,omitempty"`
	Dietary            []string `json:"dietary,omitempty"`
	Goals              []string `json:"goals,omitempty"`
	SuccessDefinition  string   `json:"success_definition,omitempty"`
	TargetEvent        string   `json:"target_event,omitempty"`
	TargetDate         string   `json:"target_date,omitempty"`
	DaysPerWeek        int      `json:"days_per_week,omitempty"`
	SessionMinutes     int      `json:"session_minutes,omitempty"`
}

// Plan generation methods.
const (
	GenerationMethodAI       = "ai"
	GenerationMethodFallback = "fallback"
)

// PlanData is the four-section plan body. Required sections: training,
// nutrition, recovery, coaching.
type PlanData map[string]any

// PlanRecord is one versioned plan for a user. Versions are strictly
// increasing per user and never reused; corrections create new versions.
type PlanRecord struct {
	ID               int64           `json:"id"`
	UserID           string          `json:"user_id"`
	Version          int             `json:"version"`
	Plan             PlanData        `json:"plan_data"`
	GenerationMethod string          `json:"generation_method"`
	FallbackReason   string          `json:"fallback_reason,omitempty"`
	IsValid          bool            `json:"is_valid"`
	ValidationErrors []string        `json:"validation_errors,omitempty"`
	WellnessSnapshot json.RawMessage `json:"wellness_snapshot,omitempty"`
	ProfileSnapshot  json.RawMessage `json:"profile_snapshot,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AuditEvent is the structured record emitted on every terminal pipeline
// transition.
type AuditEvent struct {
	ID            int64           `json:"id"`
	CorrelationID string          `json:"correlation_id"`
	EventType     string          `json:"event_type"`
	Operation     string          `json:"operation"`
	Status        string          `json:"status"`
	DurationMs    int64           `json:"duration_ms"`
	Issues        json.RawMessage `json:"issues,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
