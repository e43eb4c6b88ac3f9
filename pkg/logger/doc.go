// Package logger provides a configurable slog factory with automatic
// context attribute injection.
//
// Loggers are built through functional options and wrap the chosen handler
// with a decorator that runs registered context extractors on every record:
//
//	log := logger.New(
//		logger.WithProduction("studiokit"),
//		logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.InfoContext(ctx, "trial started", "user_id", userID)
package logger
