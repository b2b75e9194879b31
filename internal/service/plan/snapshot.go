package plan

import (
	"context"
	"time"

	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
	"golang.org/x/sync/errgroup"
)

const snapshotDays = 7

// WellnessSnapshot is the last week of logged activity, grouped by type.
// It is captured alongside each generated plan so a plan can later be read
// against the data it was built from.
type WellnessSnapshot struct {
	Workouts []core.CoachingLog `json:"workouts"`
	Meals    []core.CoachingLog `json:"meals"`
	Sleep    []core.CoachingLog `json:"sleep"`
	Mood     []core.CoachingLog `json:"mood"`
}

// buildSnapshot fetches the four wellness sources concurrently. A failing
// source degrades to an empty list; the snapshot itself never fails.
func buildSnapshot(ctx context.Context, logs core.LogsRepository, userID string, now time.Time) WellnessSnapshot {
	since := now.AddDate(0, 0, -snapshotDays)

	var snap WellnessSnapshot
	targets := []struct {
		logType string
		dst     *[]core.CoachingLog
	}{
		{core.LogTypeWorkout, &snap.Workouts},
		{core.LogTypeMeal, &snap.Meals},
		{core.LogTypeSleep, &snap.Sleep},
		{core.LogTypeMood, &snap.Mood},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		t := t
		g.Go(func() error {
			entries, err := logs.ListSince(gctx, userID, t.logType, since)
			if err != nil {
				log.FromCtx(ctx).Warn().Err(err).
					Str("log_type", t.logType).
					Msg("wellness fetch failed, using empty list")
				return nil
			}
			if entries == nil {
				entries = []core.CoachingLog{}
			}
			*t.dst = entries
			return nil
		})
	}
	_ = g.Wait()

	for _, t := range targets {
		if *t.dst == nil {
			*t.dst = []core.CoachingLog{}
		}
	}
	return snap
}
