package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/stridelabs/coachd/internal/config"
	"github.com/stridelabs/coachd/internal/providers/llm"
	"github.com/stridelabs/coachd/internal/service/coach"
	"github.com/stridelabs/coachd/internal/service/memory"
	"github.com/stridelabs/coachd/internal/service/plan"
	"github.com/stridelabs/coachd/internal/service/prompt"
	"github.com/stridelabs/coachd/internal/storage/sqlite"
	"github.com/stridelabs/coachd/pkg/log"
	"github.com/stridelabs/coachd/pkg/srv"
)

// App bundles the wired pipeline plus the background services that keep it
// healthy. Commands pick what they need.
type App struct {
	Cfg      *config.AppConfig
	Arbiter  *coach.Arbiter
	Planner  *plan.Generator
	Audit    *coach.AuditWorker
	Services []srv.Service
}

func NewApp(ctx context.Context) *App {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	aiCfg := config.NewOpenAIConfig(ctx)

	// 2. Storage
	db, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	turnsRepo := sqlite.NewTurnsRepo(db)
	digestsRepo := sqlite.NewDigestsRepo(db)
	logsRepo := sqlite.NewLogsRepo(db)
	embeddingsRepo := sqlite.NewEmbeddingsRepo(db)
	plansRepo := sqlite.NewPlansRepo(db)
	profilesRepo := sqlite.NewProfilesRepo(db)
	auditRepo := sqlite.NewAuditRepo(db)

	// 3. Model providers
	invoker := llm.NewInvoker(aiCfg)
	embedder := llm.NewEmbeddingClient(aiCfg)

	// 4. Memory
	index := memory.NewIndex(embedder, embeddingsRepo)
	assembler := memory.NewAssembler(appCfg, turnsRepo, digestsRepo, logsRepo, index)

	// Backfills embeddings for logs written while the embedder was down.
	services = append(services, memory.NewBackfillWorker(logsRepo, embeddingsRepo, embedder))

	// 5. Prompt composition
	composer := prompt.NewComposer(
		prompt.NewBaseCache(appCfg.GetBasePromptPath()),
		appCfg.MemoryTokenBudget,
	)

	// 6. Audit
	audit := coach.NewAuditWorker(auditRepo, appCfg.AuditQueueSize)
	services = append(services, audit)

	// 7. Pipeline
	arbiter := coach.NewArbiter(assembler, composer, invoker, profilesRepo, turnsRepo, logsRepo, index, audit)
	planner := plan.NewGenerator(appCfg, invoker, profilesRepo, logsRepo, plansRepo, audit)

	return &App{
		Cfg:      appCfg,
		Arbiter:  arbiter,
		Planner:  planner,
		Audit:    audit,
		Services: services,
	}
}

// Close releases everything NewApp opened. One-shot commands call it
// directly instead of going through srv.ShutdownServices. Reverse
// registration order, so the audit worker drains before the database closes.
func (a *App) Close(ctx context.Context) {
	for i := len(a.Services) - 1; i >= 0; i-- {
		if err := a.Services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", a.Services[i])
		}
	}
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0o755); err != nil {
		return nil, err
	}
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
