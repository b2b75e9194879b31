package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stridelabs/coachd/internal/config"
	"github.com/stridelabs/coachd/internal/core"
	"github.com/stridelabs/coachd/pkg/log"
)

const (
	// Queries shorter than this carry too little signal to embed.
	minRecallQueryLen = 10

	recallSnippetLen = 150
)

// Assembler composes the four memory tiers into one context block. Every
// section is best-effort: a failure in one never aborts the others or the
// caller.
type Assembler struct {
	cfg     *config.AppConfig
	turns   core.TurnsRepository
	digests core.DigestsRepository
	logs    core.LogsRepository
	index   *Index
	now     func() time.Time
}

func NewAssembler(
	cfg *config.AppConfig,
	turns core.TurnsRepository,
	digests core.DigestsRepository,
	logs core.LogsRepository,
	index *Index,
) *Assembler {
	return &Assembler{
		cfg:     cfg,
		turns:   turns,
		digests: digests,
		logs:    logs,
		index:   index,
		now:     time.Now,
	}
}

// BuildContext never fails; a user with zero history yields an empty block.
// The four sections are fetched concurrently so latency is bounded by the
// slowest branch.
func (a *Assembler) BuildContext(ctx context.Context, userID, currentQuery string) string {
	sections := make([]string, 4)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sections[0] = a.conversationSection(gctx, userID)
		return nil
	})
	g.Go(func() error {
		sections[1] = a.activitySection(gctx, userID)
		return nil
	})
	g.Go(func() error {
		sections[2] = a.digestSection(gctx, userID)
		return nil
	})
	g.Go(func() error {
		sections[3] = a.recallSection(gctx, userID, currentQuery)
		return nil
	})
	_ = g.Wait()

	var parts []string
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (a *Assembler) conversationSection(ctx context.Context, userID string) string {
	turns, err := a.turns.RecentTurns(ctx, userID, a.cfg.RecentTurns)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to load recent turns")
		return ""
	}
	if len(turns) == 0 {
		return ""
	}

	// Fetched newest-first; present chronologically.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	var sb strings.Builder
	sb.WriteString("### Recent Conversation\n")
	for _, t := range turns {
		sb.WriteString("User: " + t.UserMessage + "\n")
		sb.WriteString("Coach: " + t.AIResponse + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

var activityKeywords = map[string][]string{
	"workouts": {"workout", "gym", "run", "ran", "lift", "exercise", "training", "walk", "yoga", "swim", "bike"},
	"meals":    {"meal", "ate", "eat", "breakfast", "lunch", "dinner", "snack", "protein", "food"},
	"sleep":    {"sleep", "slept", "nap", "rest", "tired"},
	"mood":     {"mood", "feel", "feeling", "stress", "anxious", "happy", "sad", "energy"},
}

// Report order is fixed so the block is deterministic.
var activityOrder = []string{"workouts", "meals", "sleep", "mood"}

func (a *Assembler) activitySection(ctx context.Context, userID string) string {
	since := a.now().AddDate(0, 0, -a.cfg.ActivityDays)
	entries, err := a.logs.ListSince(ctx, userID, core.LogTypeMessage, since)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to load activity logs")
		return ""
	}

	tally := classifyActivity(entries)

	var lines []string
	for _, category := range activityOrder {
		if n := tally[category]; n > 0 {
			lines = append(lines, fmt.Sprintf("- %s: %d", category, n))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "### This Week's Activity\n" + strings.Join(lines, "\n")
}

func classifyActivity(entries []core.CoachingLog) map[string]int {
	tally := make(map[string]int)
	for _, entry := range entries {
		text := strings.ToLower(entry.Text)
		for category, keywords := range activityKeywords {
			for _, kw := range keywords {
				if strings.Contains(text, kw) {
					tally[category]++
					break
				}
			}
		}
	}
	return tally
}

func (a *Assembler) digestSection(ctx context.Context, userID string) string {
	notes, err := a.digests.RecentDigests(ctx, userID, a.cfg.WeeklyDigests)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to load weekly digests")
		return ""
	}
	if len(notes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("### Weekly Summaries\n")
	for _, n := range notes {
		sb.WriteString(fmt.Sprintf("- [Week of %s] %s\n", n.CreatedAt.Format("2006-01-02"), n.Text))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *Assembler) recallSection(ctx context.Context, userID, currentQuery string) string {
	if len(strings.TrimSpace(currentQuery)) < minRecallQueryLen {
		return ""
	}

	matches := a.index.SearchSimilarLogs(ctx, SearchParams{
		UserID:   userID,
		Query:    currentQuery,
		Limit:    a.cfg.RecallLimit,
		DaysBack: a.cfg.RecallDaysBack,
	})
	if len(matches) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("### Related Past Logs\n")
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("- (%s) %s\n", m.LogType, truncate(m.Text, recallSnippetLen)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
