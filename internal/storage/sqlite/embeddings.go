package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stridelabs/coachd/internal/core"
)

type EmbeddingsRepo struct {
	db *sql.DB
}

func NewEmbeddingsRepo(db *sql.DB) *EmbeddingsRepo {
	return &EmbeddingsRepo{db: db}
}

func (r *EmbeddingsRepo) SaveEmbedding(ctx context.Context, emb core.LogEmbedding) error {
	vecBlob, err := serializeVector(emb.Vector)
	if err != nil {
		return err
	}

	query := `INSERT INTO log_embeddings (user_id, log_type, log_id, text, vector) VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, emb.UserID, emb.LogType, emb.LogID, emb.Text, vecBlob)
	if err != nil {
		return fmt.Errorf("failed to insert log embedding: %w", err)
	}
	return nil
}

func (r *EmbeddingsRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]core.LogEmbedding, error) {
	query := `SELECT id, user_id, log_type, log_id, text, vector, created_at
		FROM log_embeddings WHERE user_id = ? AND created_at >= ? ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query log embeddings: %w", err)
	}
	defer rows.Close()

	var embs []core.LogEmbedding
	for rows.Next() {
		var e core.LogEmbedding
		var blob []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.LogType, &e.LogID, &e.Text, &blob, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log embedding: %w", err)
		}
		vec, err := deserializeVector(blob)
		if err != nil {
			return nil, err
		}
		e.Vector = vec
		embs = append(embs, e)
	}
	return embs, rows.Err()
}
