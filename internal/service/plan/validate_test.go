package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridelabs/coachd/internal/core"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.input))
		})
	}
}

func TestParsePlan(t *testing.T) {
	data, err := parsePlan("```json\n" + validPlanJSON + "\n```")
	require.NoError(t, err)
	assert.Contains(t, data, "training")

	_, err = parsePlan("not json at all")
	assert.Error(t, err)

	_, err = parsePlan("")
	assert.Error(t, err)
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name     string
		data     core.PlanData
		wantErrs int
	}{
		{"nil plan", nil, 1},
		{"all sections present", core.PlanData{
			"training": map[string]any{"a": 1},
			"nutrition": "eat well",
			"recovery":  map[string]any{"b": 2},
			"coaching":  "keep going",
		}, 0},
		{"missing two sections", core.PlanData{
			"training":  map[string]any{"a": 1},
			"nutrition": "eat well",
		}, 2},
		{"blank string section", core.PlanData{
			"training":  "   ",
			"nutrition": "x",
			"recovery":  "x",
			"coaching":  "x",
		}, 1},
		{"empty object section", core.PlanData{
			"training":  map[string]any{},
			"nutrition": "x",
			"recovery":  "x",
			"coaching":  "x",
		}, 1},
		{"wrong type section", core.PlanData{
			"training":  42,
			"nutrition": "x",
			"recovery":  "x",
			"coaching":  "x",
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validatePlan(tt.data)
			assert.NotNil(t, errs)
			assert.Len(t, errs, tt.wantErrs)
		})
	}
}
