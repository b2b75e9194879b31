package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
)

const (
	// Results below this cosine similarity are noise, not recall.
	minSimilarity = 0.5

	defaultSearchLimit    = 3
	defaultSearchDaysBack = 90
)

// Index generates, stores and searches vectors over coaching-log text.
type Index struct {
	embedder core.Embedder
	repo     core.EmbeddingsRepository
	now      func() time.Time
}

func NewIndex(embedder core.Embedder, repo core.EmbeddingsRepository) *Index {
	return &Index{
		embedder: embedder,
		repo:     repo,
		now:      time.Now,
	}
}

// Generate delegates to the embedding collaborator. Callers must treat
// core.ErrEmbeddingUnavailable as non-fatal.
func (x *Index) Generate(ctx context.Context, text string) ([]float32, error) {
	return x.embedder.Embed(ctx, text)
}

// StoreLogEmbedding generates and persists a vector for one coaching log.
// Returns nil on any failure so batch callers can continue.
func (x *Index) StoreLogEmbedding(ctx context.Context, entry core.CoachingLog) *core.LogEmbedding {
	logger := log.FromCtx(ctx)

	vec, err := x.embedder.Embed(ctx, entry.Text)
	if err != nil {
		logger.Warn().Err(err).Int64("log_id", entry.ID).Msg("failed to embed coaching log")
		return nil
	}

	emb := core.LogEmbedding{
		UserID:    entry.UserID,
		LogType:   entry.LogType,
		LogID:     entry.ID,
		Text:      entry.Text,
		Vector:    vec,
		CreatedAt: entry.CreatedAt,
	}
	if err := x.repo.SaveEmbedding(ctx, emb); err != nil {
		logger.Warn().Err(err).Int64("log_id", entry.ID).Msg("failed to persist log embedding")
		return nil
	}
	return &emb
}

type SearchParams struct {
	UserID   string
	Query    string
	Limit    int
	DaysBack int
}

type SimilarLog struct {
	LogType    string
	Text       string
	Similarity float32
	CreatedAt  time.Time
}

// SearchSimilarLogs ranks the user's recent log embeddings by cosine
// similarity against the query. Collaborator failures degrade to an empty
// list.
func (x *Index) SearchSimilarLogs(ctx context.Context, p SearchParams) []SimilarLog {
	logger := log.FromCtx(ctx)

	if p.Limit <= 0 {
		p.Limit = defaultSearchLimit
	}
	if p.DaysBack <= 0 {
		p.DaysBack = defaultSearchDaysBack
	}

	queryVec, err := x.embedder.Embed(ctx, p.Query)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to embed semantic recall query")
		return nil
	}

	since := x.now().AddDate(0, 0, -p.DaysBack)
	candidates, err := x.repo.ListSince(ctx, p.UserID, since)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list log embeddings")
		return nil
	}

	var matches []SimilarLog
	for _, c := range candidates {
		sim := cosineSimilarity(queryVec, c.Vector)
		if sim < minSimilarity {
			continue
		}
		matches = append(matches, SimilarLog{
			LogType:    c.LogType,
			Text:       c.Text,
			Similarity: sim,
			CreatedAt:  c.CreatedAt,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > p.Limit {
		matches = matches[:p.Limit]
	}
	return matches
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
