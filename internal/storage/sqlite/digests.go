package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stridelabs/coachd/internal/core"
)

type DigestsRepo struct {
	db *sql.DB
}

func NewDigestsRepo(db *sql.DB) *DigestsRepo {
	return &DigestsRepo{db: db}
}

func (r *DigestsRepo) AddDigest(ctx context.Context, note core.WeeklyDigestNote) error {
	noteType := note.Type
	if noteType == "" {
		noteType = core.DigestTypeWeeklySummary
	}
	query := `INSERT INTO digest_notes (user_id, text, type) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, note.UserID, note.Text, noteType)
	if err != nil {
		return fmt.Errorf("failed to insert digest note: %w", err)
	}
	return nil
}

func (r *DigestsRepo) RecentDigests(ctx context.Context, userID string, limit int) ([]core.WeeklyDigestNote, error) {
	query := `SELECT id, user_id, text, type, created_at
		FROM digest_notes WHERE user_id = ? AND type = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, core.DigestTypeWeeklySummary, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query digest notes: %w", err)
	}
	defer rows.Close()

	var notes []core.WeeklyDigestNote
	for rows.Next() {
		var n core.WeeklyDigestNote
		if err := rows.Scan(&n.ID, &n.UserID, &n.Text, &n.Type, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan digest note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
