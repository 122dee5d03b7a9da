// Package authenticator is the verification entry point used by login and
// step-up flows.
//
// It runs totp.Verify at the configured clock time with the deployment's
// drift tolerance, optionally refuses codes already used through a
// replay.Store, logs the outcome and counts it in Prometheus metrics.
// Rejections are logged without saying why, so logs never tell an attacker
// whether a code was wrong or replayed.
//
//	auth, err := authenticator.New(cfg,
//		authenticator.WithReplayStore(replay.NewMemoryStore()),
//		authenticator.WithLogger(log),
//		authenticator.WithMetrics(authenticator.NewMetrics(prometheus.DefaultRegisterer)),
//	)
//
//	res, err := auth.Verify(ctx, user.ID, params, submitted)
//	if err != nil {
//		return err // misconfiguration or store outage
//	}
//	if !res.Accepted {
//		return ErrInvalidCode
//	}
package authenticator
