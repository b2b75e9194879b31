package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafetyGateMealSkipping(t *testing.T) {
	g := NewSafetyGate()
	res := g.Evaluate("You should skip breakfast to lose weight faster.")
	assert.False(t, res.Safe)

	var labels []string
	for _, issue := range res.Issues {
		labels = append(labels, issue.Label)
	}
	assert.Contains(t, labels, "meal-skipping-advice")
}

func TestSafetyGateEmptyInput(t *testing.T) {
	g := NewSafetyGate()
	res := g.Evaluate("")
	assert.True(t, res.Safe)
	assert.Empty(t, res.Issues)
	assert.NotNil(t, res.Issues)
}

func TestSafetyGateBenignText(t *testing.T) {
	g := NewSafetyGate()
	res := g.Evaluate("Nice work on the three workouts this week. A short walk tomorrow would round things out.")
	assert.True(t, res.Safe)
	assert.Empty(t, res.Issues)
}

func TestSafetyGateRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		label string
	}{
		{"extended fasting", "Try fasting for 48 hours, it resets the body.", "extended-fasting-advice"},
		{"medication advice", "You could stop taking your medication while training.", "medication-advice"},
		{"diagnosis attempt", "Honestly it sounds like you have a thyroid issue.", "diagnosis-attempt"},
		{"discouraging consultation", "No need to see a doctor for that.", "discouraging-medical-consultation"},
		{"cure claim", "This routine cures diabetes in most people.", "cure-claim"},
		{"exercising through injury", "Just push through the pain and finish the set.", "exercising-through-injury"},
		{"dismissing injury", "That's just soreness, nothing to worry about.", "dismissing-injury-concern"},
		{"supplement claim", "These fat burners are guaranteed to work.", "unverified-supplement-claim"},
		{"rapid weight loss", "You can lose 10 pounds in a week on this.", "rapid-weight-loss-claim"},
		{"very low calorie", "Stick to 800 calories a day until the event.", "very-low-calorie-suggestion"},
	}

	g := NewSafetyGate()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Evaluate(tt.input)
			require.False(t, res.Safe, "expected unsafe for %q", tt.input)

			var labels []string
			for _, issue := range res.Issues {
				labels = append(labels, issue.Label)
			}
			assert.Contains(t, labels, tt.label)
		})
	}
}

// All applicable rules are collected, not just the first.
func TestSafetyGateCollectsAllIssues(t *testing.T) {
	g := NewSafetyGate()
	res := g.Evaluate("Skip breakfast and push through the pain, you can lose 10 pounds in a week.")
	require.False(t, res.Safe)
	assert.GreaterOrEqual(t, len(res.Issues), 3)
}
