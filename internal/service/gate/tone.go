package gate

import "regexp"

// toneRules cover interpersonal and inclusivity harm. Independent of the
// safety taxonomy; every rule carries its own severity.
var toneRules = []rule{
	{regexp.MustCompile(`(?i)\b(lazy|pathetic|weak[\s-]willed|no\s+excuse(s)?|you\s+failed|your\s+fault)\b`), "judgmental-accusatory-phrasing", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(oh\s+great,?\s+another|wow,?\s+shocking|sure\s+you\s+did|if\s+you\s+even\s+bother(ed)?)\b`), "sarcasm-passive-aggression", SeverityLow},
	{regexp.MustCompile(`(?i)\bno\s+pain,?\s*no\s+gain\b|\bpain\s+is\s+(just\s+)?weakness\s+leaving\b|\bgo\s+hard\s+or\s+go\s+home\b`), "harmful-fitness-dogma", SeverityMedium},
	{regexp.MustCompile(`(?i)\byou\s+(must|have\s+to|need\s+to)\s+(always|never)\b|\bdo\s+it\s+now,?\s+no\s+question\b`), "prescriptive-commanding-tone", SeverityLow},
	{regexp.MustCompile(`(?i)\b(fat|chubby|skinny|obese)\s+(people|person|folks)\b|\byou'?re\s+(too\s+)?(fat|overweight|skinny)\b`), "body-shaming", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(good|bad|clean|dirty|sinful|guilty?)\s+(food|foods|eating|meal)\b|\bcheat\s+(day|meal)\s+guilt\b`), "moral-framing-of-food", SeverityMedium},
	{regexp.MustCompile(`(?i)\b(man\s+up|don'?t\s+be\s+a\s+girl|like\s+a\s+real\s+man|girls?\s+can'?t)\b`), "non-inclusive-gendered-language", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(just\s+cheer\s+up|it'?s\s+all\s+in\s+your\s+head|snap\s+out\s+of\s+it|stop\s+overthinking)\b`), "dismissive-of-mental-health", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(crazy|insane|psycho|crippled|lame\s+excuse)\b`), "ableist-language", SeverityMedium},
}

type ToneResult struct {
	Safe      bool      `json:"safe"`
	Issues    []Issue   `json:"issues"`
	Severity  Severity  `json:"severity,omitempty"`
	Sentiment Sentiment `json:"sentiment"`
}

// ToneGate flags interpersonal harm and strongly negative sentiment.
type ToneGate struct {
	rules []rule
}

func NewToneGate() *ToneGate {
	return &ToneGate{rules: toneRules}
}

// Evaluate runs every rule (no short-circuit), aggregates the maximum
// severity and classifies sentiment. Empty input is safe.
func (g *ToneGate) Evaluate(text string) ToneResult {
	result := ToneResult{Safe: true, Issues: []Issue{}}
	if text == "" {
		result.Sentiment = Sentiment{Label: SentimentNeutral}
		return result
	}

	var maxSeverity Severity
	for _, r := range g.rules {
		if r.pattern.MatchString(text) {
			result.Issues = append(result.Issues, Issue{Label: r.label, Severity: r.severity})
			if r.severity.rank() > maxSeverity.rank() {
				maxSeverity = r.severity
			}
		}
	}
	result.Severity = maxSeverity
	result.Sentiment = classifySentiment(text)

	strongNegative := result.Sentiment.Label == SentimentNegative && result.Sentiment.Confidence >= 0.7
	result.Safe = len(result.Issues) == 0 && maxSeverity != SeverityHigh && !strongNegative
	return result
}
