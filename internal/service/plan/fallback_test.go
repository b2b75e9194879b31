package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridelabs/coachd/internal/core"
)

func TestFallbackPlanEmptyProfileIsValid(t *testing.T) {
	data := FallbackPlan(core.Profile{})
	assert.Empty(t, validatePlan(data))
}

func TestFallbackPlanUsesProfileSchedule(t *testing.T) {
	data := FallbackPlan(core.Profile{DaysPerWeek: 5, SessionMinutes: 30})

	training, ok := data["training"].(map[string]any)
	require.True(t, ok)
	schedule, ok := training["schedule"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, schedule["frequency"])
	assert.Equal(t, 30, schedule["duration_minutes"])
}

func TestFallbackPlanDefaults(t *testing.T) {
	data := FallbackPlan(core.Profile{})

	schedule := data["training"].(map[string]any)["schedule"].(map[string]any)
	assert.Equal(t, defaultDaysPerWeek, schedule["frequency"])
	assert.Equal(t, defaultSessionMinutes, schedule["duration_minutes"])
}

func TestFallbackPlanIsDeterministic(t *testing.T) {
	p := core.Profile{DaysPerWeek: 4, Goals: []string{"get stronger"}}
	assert.Equal(t, FallbackPlan(p), FallbackPlan(p))
}

func TestFallbackPlanUsesFirstGoal(t *testing.T) {
	data := FallbackPlan(core.Profile{Goals: []string{"run a marathon", "sleep more"}})
	coaching := data["coaching"].(map[string]any)
	assert.Equal(t, "run a marathon", coaching["weekly_goal"])
}
