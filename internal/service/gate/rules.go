// Package gate holds the two independent rule-taxonomy validators run over
// model output: SafetyGate for physical/medical harm and ToneGate for
// interpersonal and inclusivity harm. Rules are plain (pattern, label,
// severity) data iterated exhaustively so every applicable issue is
// collected for audit completeness.
package gate

import "regexp"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// rank orders severities for max-aggregation.
func (s Severity) rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	}
	return 0
}

type Issue struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

type rule struct {
	pattern  *regexp.Regexp
	label    string
	severity Severity
}
