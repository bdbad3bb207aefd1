// Package logger builds *slog.Logger values from functional options and
// provides attribute helpers with consistent key names.
//
// New selects slog.NewTextHandler or slog.NewJSONHandler, applies static
// attributes and wraps the handler in LogHandlerDecorator, which adds
// attributes taken from the record's context through ContextExtractor
// callbacks.
//
// Usage:
//
//	level, err := logger.ParseLevel(cfg.LogLevel)
//	if err != nil {
//		return err
//	}
//	log := logger.New(
//		logger.WithLevel(level),
//		logger.WithService("sift"),
//		logger.WithContextValue("document", documentKey{}),
//	)
//	log.InfoContext(ctx, "document checked", logger.Schema(path), logger.Error(err))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check.
package logger
