package logger

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"menukeeper/internal/catalog"
)

// CatalogHook returns a catalog.Hook that writes one entry per event.
//
// Storage failures and corrupt state are warnings, rejected drafts and
// missing items are info, everything else is debug.
func CatalogHook(l *zap.Logger) catalog.Hook {
	if l == nil {
		l = zap.NewNop()
	}
	return catalog.HookFunc(func(_ context.Context, ev catalog.Event) error {
		fields := []zap.Field{
			zap.String("verb", ev.Verb),
			zap.String("flavor", string(ev.Flavor)),
			zap.String("key", ev.Key),
			zap.Int("count", ev.Count),
			zap.Bool("changed", ev.Changed),
			zap.Bool("persisted", ev.Persisted),
		}
		if ev.ItemID != "" {
			fields = append(fields, zap.String("item_id", ev.ItemID))
		}
		if ev.Err != nil {
			fields = append(fields, zap.Error(ev.Err))
		}
		l.Log(levelFor(ev.Err), "catalog "+ev.Verb, fields...)
		return nil
	})
}

func levelFor(err error) zapcore.Level {
	switch {
	case err == nil:
		return zapcore.DebugLevel
	case errors.Is(err, catalog.ErrPersistence), errors.Is(err, catalog.ErrCorruptState):
		return zapcore.WarnLevel
	case errors.Is(err, catalog.ErrValidation), errors.Is(err, catalog.ErrNotFound):
		return zapcore.InfoLevel
	default:
		return zapcore.ErrorLevel
	}
}
