package gate

import "regexp"

// safetyRules cover physical and medical harm patterns. The order is the
// reporting order; every rule is checked with no short-circuit.
var safetyRules = []rule{
	{regexp.MustCompile(`(?i)\bskip(ping|s)?\s+(breakfast|lunch|dinner|meals?)\b`), "meal-skipping-advice", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(don'?t|do\s+not|stop)\s+eat(ing)?\b`), "meal-skipping-advice", SeverityHigh},
	{regexp.MustCompile(`(?i)\bfast(ing)?\s+for\s+\d+\s*(hours?|days?)\b|\b(water|dry|prolonged|extended)[\s-]fast`), "extended-fasting-advice", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(start|stop|quit|double|skip)\s+(taking\s+)?(your\s+)?(meds?|medications?|prescriptions?|insulin)\b`), "medication-advice", SeverityHigh},
	{regexp.MustCompile(`(?i)\byou\s+(probably\s+|might\s+|likely\s+)?have\s+(a|an)?\s*\b(diabetes|thyroid|depression|anxiety\s+disorder|eating\s+disorder|deficiency)\b|\bsounds\s+like\s+you\s+have\b`), "diagnosis-attempt", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(no\s+need|don'?t\s+need|don'?t\s+bother|skip)\b[^.!?]*\b(doctor|physician|gp|specialist)\b`), "discouraging-medical-consultation", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(cures?|heals?|reverses?)\b[^.!?]*\b(diabetes|cancer|disease|condition|arthritis)\b`), "cure-claim", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(push|work|train|run|exercise)\s+through\s+(the\s+)?(pain|injury)\b`), "exercising-through-injury", SeverityHigh},
	{regexp.MustCompile(`(?i)\b(it'?s\s+)?(just|only)\s+(a\s+(bit|little)\s+of\s+)?(soreness|pain)\b|\bignore\s+(the\s+)?pain\b`), "dismissing-injury-concern", SeverityMedium},
	{regexp.MustCompile(`(?i)\b(supplements?|pills?|powders?|fat\s+burners?)\b[^.!?]*\b(guaranteed?|miracle|melts?|burns?\s+fat|detox)\b`), "unverified-supplement-claim", SeverityMedium},
	{regexp.MustCompile(`(?i)\blose\s+\d+\s*(lbs?|pounds?|kgs?|kilos?)\s+in\s+(a\s+week|\d+\s*(days?|weeks?))\b`), "rapid-weight-loss-claim", SeverityHigh},
	{regexp.MustCompile(`(?i)\b([1-9]\d{2}|\d{1,2})\s*calories?\s+(a|per)\s+day\b`), "very-low-calorie-suggestion", SeverityHigh},
}

type SafetyResult struct {
	Safe   bool    `json:"safe"`
	Issues []Issue `json:"issues"`
}

// SafetyGate flags model output that could cause physical or medical harm.
type SafetyGate struct {
	rules []rule
}

func NewSafetyGate() *SafetyGate {
	return &SafetyGate{rules: safetyRules}
}

// Evaluate runs every rule and collects all matches. Empty input is safe.
func (g *SafetyGate) Evaluate(text string) SafetyResult {
	result := SafetyResult{Safe: true, Issues: []Issue{}}
	if text == "" {
		return result
	}

	for _, r := range g.rules {
		if r.pattern.MatchString(text) {
			result.Issues = append(result.Issues, Issue{Label: r.label, Severity: r.severity})
		}
	}
	result.Safe = len(result.Issues) == 0
	return result
}
