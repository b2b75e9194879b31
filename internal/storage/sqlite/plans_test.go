package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridelabs/coachd/internal/core"
)

func testDB(t *testing.T) *PlansRepo {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "coachd.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPlansRepo(db)
}

func testPlan(userID string) *core.PlanRecord {
	return &core.PlanRecord{
		UserID: userID,
		Plan: core.PlanData{
			"training":  map[string]any{"schedule": map[string]any{"frequency": 3}},
			"nutrition": "balanced meals",
			"recovery":  "sleep 8 hours",
			"coaching":  "small wins",
		},
		GenerationMethod: core.GenerationMethodAI,
		IsValid:          true,
		WellnessSnapshot: []byte(`{}`),
		ProfileSnapshot:  []byte(`{}`),
	}
}

func TestInsertNextAssignsIncreasingVersions(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	first := testPlan("u1")
	require.NoError(t, repo.InsertNext(ctx, first))
	assert.Equal(t, 1, first.Version)

	second := testPlan("u1")
	require.NoError(t, repo.InsertNext(ctx, second))
	assert.Equal(t, 2, second.Version)

	// Versions are per user.
	other := testPlan("u2")
	require.NoError(t, repo.InsertNext(ctx, other))
	assert.Equal(t, 1, other.Version)
}

func TestLatestRoundTrip(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	rec := testPlan("u1")
	rec.FallbackReason = "model invocation failed: timeout"
	rec.GenerationMethod = core.GenerationMethodFallback
	rec.ValidationErrors = []string{`missing section "training"`, `section "coaching" is blank`}
	require.NoError(t, repo.InsertNext(ctx, rec))

	got, err := repo.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, rec.Version, got.Version)
	assert.Equal(t, core.GenerationMethodFallback, got.GenerationMethod)
	assert.Equal(t, rec.FallbackReason, got.FallbackReason)
	assert.Equal(t, rec.ValidationErrors, got.ValidationErrors)
	assert.Equal(t, "balanced meals", got.Plan["nutrition"])
}

func TestMaxVersionEmpty(t *testing.T) {
	repo := testDB(t)
	max, err := repo.MaxVersion(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, max)
}

func TestInsertDuplicateVersionRejected(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	rec := testPlan("u1")
	require.NoError(t, repo.InsertNext(ctx, rec))

	dup := testPlan("u1")
	dup.Version = rec.Version
	err := repo.insert(ctx, dup)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}
