package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stridelabs/coachd/internal/core"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Get(ctx context.Context, userID string) (core.Profile, error) {
	var data string
	query := `SELECT data FROM profiles WHERE user_id = ?`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, core.ErrProfileNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}

	var profile core.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return core.Profile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	profile.UserID = userID
	return profile, nil
}

func (r *ProfilesRepo) Save(ctx context.Context, profile core.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `INSERT INTO profiles (user_id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, profile.UserID, string(data)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
