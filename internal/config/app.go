package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/stridelabs/coachd/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"COACHD_RUNTIME_PATH" envDefault:".coachd"`
	Environment string `env:"COACHD_ENV" envDefault:"development"`

	// Memory assembly
	RecentTurns       int `env:"COACHD_RECENT_TURNS" envDefault:"5"`
	ActivityDays      int `env:"COACHD_ACTIVITY_DAYS" envDefault:"7"`
	WeeklyDigests     int `env:"COACHD_WEEKLY_DIGESTS" envDefault:"4"`
	MemoryTokenBudget int `env:"COACHD_MEMORY_TOKEN_BUDGET" envDefault:"1500"`

	// Semantic recall
	RecallLimit    int `env:"COACHD_RECALL_LIMIT" envDefault:"3"`
	RecallDaysBack int `env:"COACHD_RECALL_DAYS_BACK" envDefault:"90"`

	// Audit queue capacity
	AuditQueueSize int `env:"COACHD_AUDIT_QUEUE_SIZE" envDefault:"256"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "coachd.db")
}

func (c AppConfig) GetBasePromptPath() string {
	return filepath.Join(c.RuntimePath, "COACH.md")
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
