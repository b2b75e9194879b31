package plan

import (
	"fmt"

	"github.com/stridelabs/coachd/internal/core"
)

// Defaults used when the profile does not pin down a schedule.
const (
	defaultDaysPerWeek    = 3
	defaultSessionMinutes = 45
)

// FallbackPlan builds a plan purely from profile fields and fixed defaults.
// It is deterministic and structurally valid for any profile, including an
// empty one.
func FallbackPlan(profile core.Profile) core.PlanData {
	frequency := profile.DaysPerWeek
	if frequency <= 0 {
		frequency = defaultDaysPerWeek
	}
	duration := profile.SessionMinutes
	if duration <= 0 {
		duration = defaultSessionMinutes
	}

	goal := "build a consistent training habit"
	if len(profile.Goals) > 0 {
		goal = profile.Goals[0]
	}

	return core.PlanData{
		"training": map[string]any{
			"schedule": map[string]any{
				"frequency":        frequency,
				"duration_minutes": duration,
			},
			"focus": fmt.Sprintf("%d full-body sessions per week mixing strength and low-impact cardio", frequency),
			"notes": "Start every session with a 5 minute warm-up and finish with light stretching.",
		},
		"nutrition": map[string]any{
			"macro_targets": map[string]any{
				"protein_pct": 30,
				"carbs_pct":   40,
				"fat_pct":     30,
			},
			"guidance": "Build meals around a protein source, vegetables and whole grains. Drink water with every meal.",
		},
		"recovery": map[string]any{
			"sleep_hours_target": 8,
			"rest_days":          7 - frequency,
			"guidance":           "Keep at least one full rest day between harder sessions and prioritise sleep over extra workouts.",
		},
		"coaching": map[string]any{
			"weekly_goal": goal,
			"check_in":    "Log how each session felt so the next plan can adjust.",
		},
	}
}
