package core

import (
	"context"
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

type TurnsRepository interface {
	AddTurn(ctx context.Context, turn ConversationTurn) error
	// RecentTurns returns the last limit turns, newest first.
	RecentTurns(ctx context.Context, userID string, limit int) ([]ConversationTurn, error)
}

type DigestsRepository interface {
	AddDigest(ctx context.Context, note WeeklyDigestNote) error
	// RecentDigests returns up to limit weekly summaries, newest first.
	RecentDigests(ctx context.Context, userID string, limit int) ([]WeeklyDigestNote, error)
}

type LogsRepository interface {
	AddLog(ctx context.Context, entry CoachingLog) (int64, error)
	// ListSince returns logs of the given type created at or after since,
	// oldest first. An empty logType matches all types.
	ListSince(ctx context.Context, userID, logType string, since time.Time) ([]CoachingLog, error)
	// ListUnembedded returns logs that have no stored embedding yet.
	ListUnembedded(ctx context.Context, limit int) ([]CoachingLog, error)
}

type EmbeddingsRepository interface {
	SaveEmbedding(ctx context.Context, emb LogEmbedding) error
	// ListSince returns embeddings for a user created at or after since,
	// vectors included.
	ListSince(ctx context.Context, userID string, since time.Time) ([]LogEmbedding, error)
}

type PlansRepository interface {
	// InsertNext persists rec with version = max(existing)+1 for the user
	// and fills in rec.Version and rec.ID. The (user_id, version) pair is
	// unique at the storage layer; a conflicting concurrent insert is
	// retried once with a fresh max.
	InsertNext(ctx context.Context, rec *PlanRecord) error
	MaxVersion(ctx context.Context, userID string) (int, error)
	Latest(ctx context.Context, userID string) (PlanRecord, error)
}

type ProfilesRepository interface {
	// Get returns ErrProfileNotFound when the user has no profile.
	Get(ctx context.Context, userID string) (Profile, error)
	Save(ctx context.Context, profile Profile) error
}

type AuditRepository interface {
	AddEvent(ctx context.Context, ev AuditEvent) error
}
