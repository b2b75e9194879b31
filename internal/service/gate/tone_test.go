package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneGateEmptyInput(t *testing.T) {
	g := NewToneGate()
	res := g.Evaluate("")
	assert.True(t, res.Safe)
	assert.Empty(t, res.Issues)
	assert.NotNil(t, res.Issues)
	assert.Equal(t, SentimentNeutral, res.Sentiment.Label)
}

func TestToneGateRules(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		label    string
		severity Severity
	}{
		{"judgmental", "You failed again because you're lazy.", "judgmental-accusatory-phrasing", SeverityHigh},
		{"sarcasm", "Oh great, another missed workout.", "sarcasm-passive-aggression", SeverityLow},
		{"fitness dogma", "Remember: no pain no gain.", "harmful-fitness-dogma", SeverityMedium},
		{"commanding", "You must always finish every set.", "prescriptive-commanding-tone", SeverityLow},
		{"body shaming", "You're too fat for this program.", "body-shaming", SeverityHigh},
		{"moral framing", "That was a bad food choice.", "moral-framing-of-food", SeverityMedium},
		{"gendered", "Come on, man up and lift.", "non-inclusive-gendered-language", SeverityHigh},
		{"mental health", "Just cheer up and get moving.", "dismissive-of-mental-health", SeverityHigh},
		{"ableist", "That's a crazy amount of excuses.", "ableist-language", SeverityMedium},
	}

	g := NewToneGate()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Evaluate(tt.input)
			require.False(t, res.Safe, "expected unsafe for %q", tt.input)

			found := false
			for _, issue := range res.Issues {
				if issue.Label == tt.label {
					found = true
					assert.Equal(t, tt.severity, issue.Severity)
				}
			}
			assert.True(t, found, "expected issue %s", tt.label)
		})
	}
}

func TestToneGateSeverityIsMax(t *testing.T) {
	g := NewToneGate()
	// One high (no excuses) plus two low (commanding, sarcasm) rules.
	res := g.Evaluate("No excuses. You must always show up, if you even bothered to plan.")
	require.GreaterOrEqual(t, len(res.Issues), 3)
	assert.Equal(t, SeverityHigh, res.Severity)
	assert.False(t, res.Safe)
}

func TestToneGateStrongNegativeSentiment(t *testing.T) {
	g := NewToneGate()
	// No rule matches, but the text is overwhelmingly negative.
	res := g.Evaluate("This is bad, worse than terrible. Pointless, hopeless effort.")
	assert.Empty(t, res.Issues)
	assert.Equal(t, SentimentNegative, res.Sentiment.Label)
	assert.GreaterOrEqual(t, res.Sentiment.Confidence, 0.7)
	assert.False(t, res.Safe)
}

func TestToneGateSupportiveText(t *testing.T) {
	g := NewToneGate()
	res := g.Evaluate("Great progress this week. Keep the walks going and celebrate the small wins.")
	assert.True(t, res.Safe)
	assert.Empty(t, res.Issues)
	assert.Equal(t, SentimentPositive, res.Sentiment.Label)
}

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		label string
	}{
		{"positive", "great work, solid progress", SentimentPositive},
		{"negative", "terrible, awful week", SentimentNegative},
		{"neutral no signal", "the schedule has three sessions", SentimentNeutral},
		{"tied", "good effort but bad timing", SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.label, classifySentiment(tt.input).Label)
		})
	}
}
