package prompt

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
)

// Composer merges the cached base instructions with per-user profile
// directives and the assembled memory context.
type Composer struct {
	base        *BaseCache
	tokenBudget int
}

func NewComposer(base *BaseCache, tokenBudget int) *Composer {
	return &Composer{
		base:        base,
		tokenBudget: tokenBudget,
	}
}

// Compose returns the system messages for one request: base instructions,
// profile directives (only blocks whose fields are present) and the memory
// context last.
func (c *Composer) Compose(ctx context.Context, profile core.Profile, memoryContext string) []core.Message {
	messages := []core.Message{
		{Role: core.RoleSystem, Content: c.base.Load(ctx)},
	}

	if directives := profileDirectives(profile); directives != "" {
		messages = append(messages, core.Message{Role: core.RoleSystem, Content: directives})
	}

	if memoryContext != "" {
		clamped := clampTokens(ctx, memoryContext, c.tokenBudget)
		messages = append(messages, core.Message{
			Role:    core.RoleSystem,
			Content: "WHAT YOU REMEMBER ABOUT THIS USER:\n" + clamped,
		})
	}

	return messages
}

func profileDirectives(p core.Profile) string {
	var blocks []string

	if tone := personaTone(p.Persona); tone != "" {
		blocks = append(blocks, "COACHING STYLE:\n"+tone)
	}

	if p.Why != "" {
		blocks = append(blocks, "THEIR WHY:\n"+p.Why)
	}

	if safety := safetyBlock(p); safety != "" {
		blocks = append(blocks, safety)
	}

	if len(p.Dietary) > 0 {
		blocks = append(blocks, "DIETARY AND CULTURAL CONSTRAINTS:\n- "+strings.Join(p.Dietary, "\n- "))
	}

	if goals := goalsBlock(p); goals != "" {
		blocks = append(blocks, goals)
	}

	if event := eventBlock(p); event != "" {
		blocks = append(blocks, event)
	}

	return strings.Join(blocks, "\n\n")
}

// safetyBlock phrases medical flags as a hard constraint.
func safetyBlock(p core.Profile) string {
	var lines []string
	if len(p.Conditions) > 0 {
		lines = append(lines, "- Conditions: "+strings.Join(p.Conditions, ", "))
	}
	if p.PregnancyOrRecover != "" {
		lines = append(lines, "- Pregnancy/recovery status: "+p.PregnancyOrRecover)
	}
	if len(p.Injuries) > 0 {
		lines = append(lines, "- Injuries: "+strings.Join(p.Injuries, ", "))
	}
	if len(lines) == 0 {
		return ""
	}
	return "HEALTH FLAGS (your advice must not contradict these):\n" + strings.Join(lines, "\n")
}

func goalsBlock(p core.Profile) string {
	var lines []string
	if len(p.Goals) > 0 {
		lines = append(lines, "- Goals: "+strings.Join(p.Goals, ", "))
	}
	if p.SuccessDefinition != "" {
		lines = append(lines, "- Success looks like: "+p.SuccessDefinition)
	}
	if len(lines) == 0 {
		return ""
	}
	return "GOALS:\n" + strings.Join(lines, "\n")
}

func eventBlock(p core.Profile) string {
	if p.TargetEvent == "" {
		return ""
	}
	if p.TargetDate != "" {
		return fmt.Sprintf("TARGET EVENT:\n%s on %s", p.TargetEvent, p.TargetDate)
	}
	return "TARGET EVENT:\n" + p.TargetEvent
}

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

func getTokenizer() *tiktoken.Tiktoken {
	tokenizerOnce.Do(func() {
		tk, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tokenizer = tk
		}
	})
	return tokenizer
}

// clampTokens trims text to the token budget. When the tokenizer cannot be
// initialised the text passes through untouched.
func clampTokens(ctx context.Context, text string, budget int) string {
	if budget <= 0 {
		return text
	}
	tk := getTokenizer()
	if tk == nil {
		return text
	}

	tokens := tk.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}

	log.FromCtx(ctx).Debug().
		Int("tokens", len(tokens)).
		Int("budget", budget).
		Msg("memory context over token budget, clamping")
	return tk.Decode(tokens[:budget])
}
