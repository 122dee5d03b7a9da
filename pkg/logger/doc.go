// Package logger builds *slog.Logger values for otpkit services and
// provides attribute helpers with consistent keys for the OTP domain.
//
// Attributes named "secret" or "code" are always replaced by "[REDACTED]";
// WithRedactedKeys adds more. Records logged with a context carrying
// ContextWithAccountID or ContextWithEnrollmentID get account_id and
// enrollment_id attached, so components set the identifiers once per call
// instead of on every log line:
//
//	log := logger.New(logger.WithEnvironment("production", "auth-service"))
//
//	ctx = logger.ContextWithAccountID(ctx, accountID)
//	log.InfoContext(ctx, "totp verified",
//	    logger.Counter(res.Counter),
//	    logger.Delta(res.Delta),
//	)
//
// Contextual adds the same behaviour to a logger that was not built by New.
//
// Binaries usually read Config from the environment (APP_ENV, APP_NAME,
// LOG_LEVEL, LOG_FORMAT) and call NewFromConfig.
//
// Error returns an empty attribute for a nil error, so
//
//	log.Info("operation finished", logger.Error(err))
//
// needs no nil check.
package logger
