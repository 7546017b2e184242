// Package logger builds the *slog.Logger used across regform.
//
// New assembles a text or JSON handler from functional options, attaches
// static attributes and wraps the result in a decorator that copies values
// out of context.Context (session ids, request ids) into every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "regform"),
//	    logger.WithContextValue("session_id", sessionKey),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "registration stored",
//	    logger.RegistrationID(rec.ID),
//	    logger.Storage("postgres"),
//	)
//
// Attribute helpers in attr.go keep key names consistent. Helpers that take
// an error or an optional id return an empty slog.Attr for nil input, which
// slog drops, so callers do not need nil checks.
//
// Field values are never passed to the logger by regform code; only field
// names are, since values may hold passwords.
package logger
