package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
)

type PlansRepo struct {
	db *sql.DB
}

func NewPlansRepo(db *sql.DB) *PlansRepo {
	return &PlansRepo{db: db}
}

// InsertNext assigns version = max(existing)+1 and inserts. The table has a
// UNIQUE(user_id, version) constraint; if a concurrent regeneration claims
// the same version first, the insert is retried once with a fresh max.
func (r *PlansRepo) InsertNext(ctx context.Context, rec *core.PlanRecord) error {
	for attempt := 0; attempt < 2; attempt++ {
		maxVersion, err := r.MaxVersion(ctx, rec.UserID)
		if err != nil {
			return err
		}
		rec.Version = maxVersion + 1

		err = r.insert(ctx, rec)
		if err == nil {
			return nil
		}

		if isUniqueViolation(err) && attempt == 0 {
			log.FromCtx(ctx).Warn().
				Str("user_id", rec.UserID).
				Int("version", rec.Version).
				Msg("plan version conflict, retrying with fresh max")
			continue
		}
		return err
	}
	return fmt.Errorf("plan version conflict for user %s persisted after retry", rec.UserID)
}

func (r *PlansRepo) insert(ctx context.Context, rec *core.PlanRecord) error {
	planJSON, err := json.Marshal(rec.Plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan data: %w", err)
	}

	validationErrors := strings.Join(rec.ValidationErrors, "; ")

	query := `INSERT INTO plans
		(user_id, version, plan_data, generation_method, fallback_reason, is_valid, validation_errors, wellness_snapshot, profile_snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.Version, string(planJSON), rec.GenerationMethod, rec.FallbackReason,
		rec.IsValid, validationErrors, string(rec.WellnessSnapshot), string(rec.ProfileSnapshot),
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (r *PlansRepo) MaxVersion(ctx context.Context, userID string) (int, error) {
	var maxVersion int
	query := `SELECT COALESCE(MAX(version), 0) FROM plans WHERE user_id = ?`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&maxVersion); err != nil {
		return 0, fmt.Errorf("failed to query max plan version: %w", err)
	}
	return maxVersion, nil
}

func (r *PlansRepo) Latest(ctx context.Context, userID string) (core.PlanRecord, error) {
	query := `SELECT id, user_id, version, plan_data, generation_method, fallback_reason, is_valid, validation_errors, wellness_snapshot, profile_snapshot, created_at
		FROM plans WHERE user_id = ? ORDER BY version DESC LIMIT 1`

	var rec core.PlanRecord
	var planJSON, validationErrors, wellness, profile string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.ID, &rec.UserID, &rec.Version, &planJSON, &rec.GenerationMethod,
		&rec.FallbackReason, &rec.IsValid, &validationErrors, &wellness, &profile, &rec.CreatedAt,
	)
	if err != nil {
		return core.PlanRecord{}, fmt.Errorf("failed to query latest plan: %w", err)
	}

	if err := json.Unmarshal([]byte(planJSON), &rec.Plan); err != nil {
		return core.PlanRecord{}, fmt.Errorf("failed to unmarshal plan data: %w", err)
	}
	if validationErrors != "" {
		rec.ValidationErrors = strings.Split(validationErrors, "; ")
	}
	rec.WellnessSnapshot = json.RawMessage(wellness)
	rec.ProfileSnapshot = json.RawMessage(profile)
	return rec, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
