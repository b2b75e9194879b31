package plan

import (
	"fmt"
	"strings"

	"github.com/stridelabs/coachd/internal/core"
)

const planSystemPrompt = `You are a fitness and wellness coach writing a one-week plan.
Respond with a single JSON object containing exactly four keys: "training", "nutrition", "recovery", "coaching".
Each key must map to a non-empty object or a non-blank string. Do not include any text outside the JSON object.
The plan must respect every health flag and dietary constraint listed. Never recommend skipping meals, extreme calorie restriction or training through injury.`

func planMessages(profile core.Profile, snapshot WellnessSnapshot) []core.Message {
	var b strings.Builder

	b.WriteString("Write this week's plan for the user below.\n\nPROFILE:\n")
	writeProfile(&b, profile)
	b.WriteString("\nLAST 7 DAYS:\n")
	writeLogs(&b, "Workouts", snapshot.Workouts)
	writeLogs(&b, "Meals", snapshot.Meals)
	writeLogs(&b, "Sleep", snapshot.Sleep)
	writeLogs(&b, "Mood", snapshot.Mood)

	return []core.Message{
		{Role: core.RoleSystem, Content: planSystemPrompt},
		{Role: core.RoleUser, Content: b.String()},
	}
}

func writeProfile(b *strings.Builder, p core.Profile) {
	writeLine := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(b, "- %s: %s\n", label, value)
		}
	}

	writeLine("Goals", strings.Join(p.Goals, ", "))
	writeLine("Success looks like", p.SuccessDefinition)
	writeLine("Why", p.Why)
	writeLine("Health conditions", strings.Join(p.Conditions, ", "))
	writeLine("Pregnancy or recovery", p.PregnancyOrRecover)
	writeLine("Injuries", strings.Join(p.Injuries, ", "))
	writeLine("Dietary constraints", strings.Join(p.Dietary, ", "))
	if p.TargetEvent != "" {
		writeLine("Target event", fmt.Sprintf("%s on %s", p.TargetEvent, p.TargetDate))
	}
	if p.DaysPerWeek > 0 {
		fmt.Fprintf(b, "- Available days per week: %d\n", p.DaysPerWeek)
	}
	if p.SessionMinutes > 0 {
		fmt.Fprintf(b, "- Minutes per session: %d\n", p.SessionMinutes)
	}
}

func writeLogs(b *strings.Builder, label string, entries []core.CoachingLog) {
	fmt.Fprintf(b, "%s (%d):\n", label, len(entries))
	for _, e := range entries {
		fmt.Fprintf(b, "- %s\n", e.Text)
	}
}
