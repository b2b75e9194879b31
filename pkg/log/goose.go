package log

import (
	"context"

	"github.com/rs/zerolog"
)

// GooseLogger routes goose migration output through the context logger so
// migration lines carry the same format as the rest of the process.
type GooseLogger struct {
	logger *zerolog.Logger
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msgf(format, v...)
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logger.Info().Msgf(format, v...)
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx),
	}
}
