package obs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// Attach a fresh run ID unless the context already carries one.
func WithRunID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(RunIDKey).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, RunIDKey, uuid.NewString())
}

func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Time logs the duration of an operation when the returned func is called,
// including the error it ended with, if any.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	runID := RunID(ctx)

	return func(errp *error) {
		fields := []zap.Field{
			zap.String("run_id", runID),
			zap.String("op", name),
			zap.Duration("dur", time.Since(start)),
		}

		if errp != nil && *errp != nil {
			zap.L().Warn("operation failed", append(fields, zap.Error(*errp))...)
			return
		}
		zap.L().Debug("operation done", fields...)
	}
}
