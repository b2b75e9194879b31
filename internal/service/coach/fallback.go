package coach

import "hash/fnv"

// Fallback reasons recorded on short-circuit transitions.
const (
	FallbackTimeout    = "timeout"
	FallbackError      = "error"
	FallbackUnsafe     = "unsafe"
	FallbackUnsafeTone = "unsafe-tone"
)

// FallbackMessages is the full set of canned replies. Gate-blocked or failed
// responses are always replaced with one of these; original model text is
// never surfaced.
var FallbackMessages = []string{
	"I want to give that a bit more thought before answering. Could you ask me again in a moment?",
	"I'm not able to give you a good answer on that right now. Let's come back to it later. In the meantime, how has your week been going?",
	"That one deserves a careful answer and I don't have one for you right now. If it's about your health, a quick chat with your doctor is always a safe bet.",
	"I couldn't put together a response I'm confident in. Let's try rephrasing, or pick up where we left off last time.",
}

// fallbackText picks a canned message deterministically from the
// correlation id so retries of the same request read consistently.
func fallbackText(correlationID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(correlationID))
	return FallbackMessages[int(h.Sum32())%len(FallbackMessages)]
}
