package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stridelabs/coachd/internal/core"
)

type LogsRepo struct {
	db *sql.DB
}

func NewLogsRepo(db *sql.DB) *LogsRepo {
	return &LogsRepo{db: db}
}

func (r *LogsRepo) AddLog(ctx context.Context, entry core.CoachingLog) (int64, error) {
	query := `INSERT INTO coaching_logs (user_id, log_type, text) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, entry.UserID, entry.LogType, entry.Text)
	if err != nil {
		return 0, fmt.Errorf("failed to insert coaching log: %w", err)
	}
	return res.LastInsertId()
}

func (r *LogsRepo) ListSince(ctx context.Context, userID, logType string, since time.Time) ([]core.CoachingLog, error) {
	query := `SELECT id, user_id, log_type, text, created_at
		FROM coaching_logs WHERE user_id = ? AND created_at >= ?`
	args := []any{userID, since}
	if logType != "" {
		query += ` AND log_type = ?`
		args = append(args, logType)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query coaching logs: %w", err)
	}
	defer rows.Close()

	var logs []core.CoachingLog
	for rows.Next() {
		var l core.CoachingLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.LogType, &l.Text, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coaching log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *LogsRepo) ListUnembedded(ctx context.Context, limit int) ([]core.CoachingLog, error) {
	query := `SELECT l.id, l.user_id, l.log_type, l.text, l.created_at
		FROM coaching_logs l
		LEFT JOIN log_embeddings e ON e.log_id = l.id
		WHERE e.id IS NULL
		ORDER BY l.id ASC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unembedded logs: %w", err)
	}
	defer rows.Close()

	var logs []core.CoachingLog
	for rows.Next() {
		var l core.CoachingLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.LogType, &l.Text, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coaching log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
