package prompt

// The three coaching personas. Each maps to a fixed tone description
// injected into the system prompt.
const (
	PersonaMotivator  = "motivator"
	PersonaStrategist = "strategist"
	PersonaNurturer   = "nurturer"
)

var personaTones = map[string]string{
	PersonaMotivator:  "High-energy and upbeat. Celebrate every win, push gently when momentum drops, keep messages short and punchy.",
	PersonaStrategist: "Calm and analytical. Explain the reasoning behind advice, reference the user's data, favour structured plans over pep talks.",
	PersonaNurturer:   "Warm and patient. Lead with empathy, normalise setbacks, never pressure, always check in on how the user is feeling.",
}

func personaTone(persona string) string {
	return personaTones[persona]
}
