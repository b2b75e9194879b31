package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
)

type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) AddTurn(ctx context.Context, turn core.ConversationTurn) error {
	query := `INSERT INTO conversation_turns (user_id, user_message, ai_response) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, turn.UserID, turn.UserMessage, turn.AIResponse)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) RecentTurns(ctx context.Context, userID string, limit int) ([]core.ConversationTurn, error) {
	query := `SELECT id, user_id, user_message, ai_response, created_at
		FROM conversation_turns WHERE user_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.ConversationTurn
	for rows.Next() {
		var t core.ConversationTurn
		if err := rows.Scan(&t.ID, &t.UserID, &t.UserMessage, &t.AIResponse, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded recent turns")
	return turns, nil
}
