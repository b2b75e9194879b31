package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stridelabs/coachd/internal/core"
)

// requiredSections every plan must carry. Each must be a non-empty object
// or a non-blank string.
var requiredSections = []string{"training", "nutrition", "recovery", "coaching"}

// parsePlan decodes the model's reply into plan data, tolerating a markdown
// code fence around the JSON body.
func parsePlan(text string) (core.PlanData, error) {
	body := stripFences(text)
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("empty plan response")
	}

	var data core.PlanData
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, fmt.Errorf("plan response is not valid JSON: %w", err)
	}
	return data, nil
}

// stripFences removes a surrounding ```json ... ``` fence if present.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag on the opening fence line.
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// validatePlan checks the four required sections. The returned slice is
// empty for a valid plan; every problem is reported, not just the first.
func validatePlan(data core.PlanData) []string {
	errs := []string{}
	if data == nil {
		return append(errs, "plan is empty")
	}

	for _, section := range requiredSections {
		value, ok := data[section]
		if !ok {
			errs = append(errs, fmt.Sprintf("missing section %q", section))
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				errs = append(errs, fmt.Sprintf("section %q is blank", section))
			}
		case map[string]any:
			if len(v) == 0 {
				errs = append(errs, fmt.Sprintf("section %q is an empty object", section))
			}
		default:
			errs = append(errs, fmt.Sprintf("section %q must be an object or string", section))
		}
	}
	return errs
}
