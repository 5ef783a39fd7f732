package helpers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/buildboard/pkg/logger"
)

// TestLogger returns a logger that discards output but still evaluates debug records.
func TestLogger() *slog.Logger {
	return slog.New(logger.NewTestHandler(slog.LevelDebug))
}

// TestCtx returns a context carrying a test logger.
func TestCtx() context.Context {
	return logger.ToContext(context.Background(), TestLogger())
}
