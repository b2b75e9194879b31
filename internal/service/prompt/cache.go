package prompt

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/stridelabs/coachd/pkg/log"
)

const baseCacheTTL = 5 * time.Minute

// defaultBasePrompt is used when the base instruction file is missing or
// unreadable, so prompt composition never fails.
const defaultBasePrompt = `You are a supportive wellness coach for everyday people.
Be encouraging, specific and honest. Celebrate consistency over intensity.
Never diagnose, never prescribe or adjust medication, and never discourage
anyone from seeing a healthcare professional. When in doubt, recommend one.
Avoid judgmental language about food, weight or missed sessions.`

// BaseCache serves the static persona/safety instructions with a TTL plus
// file-modification-time invalidation, so edits to the base file are picked
// up without re-reading it on every call.
type BaseCache struct {
	path string
	ttl  time.Duration

	mu       sync.Mutex
	text     string
	modTime  time.Time
	loadedAt time.Time

	now func() time.Time
}

func NewBaseCache(path string) *BaseCache {
	return &BaseCache{
		path: path,
		ttl:  baseCacheTTL,
		now:  time.Now,
	}
}

func (c *BaseCache) Load(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.text != "" && now.Sub(c.loadedAt) < c.ttl {
		return c.text
	}

	info, err := os.Stat(c.path)
	if err != nil {
		if c.text == "" {
			log.FromCtx(ctx).Debug().Str("path", c.path).Msg("base prompt file missing, using built-in default")
			c.text = defaultBasePrompt
		}
		c.loadedAt = now
		return c.text
	}

	// TTL expired but the file is untouched: just refresh the deadline.
	if c.text != "" && info.ModTime().Equal(c.modTime) {
		c.loadedAt = now
		return c.text
	}

	content, err := os.ReadFile(c.path)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("path", c.path).Msg("failed to read base prompt file")
		if c.text == "" {
			c.text = defaultBasePrompt
		}
		c.loadedAt = now
		return c.text
	}

	c.text = string(content)
	c.modTime = info.ModTime()
	c.loadedAt = now
	return c.text
}
