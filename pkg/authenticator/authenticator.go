package authenticator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/replay"
	"github.com/dmitrymomot/otpkit/pkg/totp"
)

// Authenticator verifies submitted codes under one deployment-wide policy.
// It is safe for concurrent use.
type Authenticator struct {
	policy  totp.Config
	replay  replay.Store
	log     *slog.Logger
	clock   Clock
	metrics *Metrics
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithReplayStore enables one-time use of codes.
func WithReplayStore(s replay.Store) Option {
	return func(a *Authenticator) {
		a.replay = s
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(a *Authenticator) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithMetrics records verification outcomes.
func WithMetrics(m *Metrics) Option {
	return func(a *Authenticator) {
		a.metrics = m
	}
}

// New validates policy and builds an Authenticator.
func New(policy totp.Config, opts ...Option) (*Authenticator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	a := &Authenticator{
		policy: policy,
		log:    slog.Default(),
		clock:  SystemClock{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = logger.Contextual(a.log).With(logger.Component("authenticator"))

	return a, nil
}

// Policy returns the configured policy.
func (a *Authenticator) Policy() totp.Config {
	return a.policy
}

// Verify checks code for accountID at the current clock time. A wrong,
// malformed or replayed code yields a result with Accepted false and a nil
// error. Errors are reserved for invalid params and replay store failures.
func (a *Authenticator) Verify(ctx context.Context, accountID string, params totp.Params, code string) (totp.VerificationResult, error) {
	if accountID == "" {
		return totp.VerificationResult{}, ErrMissingAccountID
	}
	ctx = logger.ContextWithAccountID(ctx, accountID)

	res, err := totp.Verify(params, code, a.clock.Now(), a.policy.DriftSteps)
	if err != nil {
		a.metrics.observe(ResultError, 0)
		a.log.ErrorContext(ctx, "totp verification failed", logger.Error(err))
		return totp.VerificationResult{}, err
	}

	if res.Accepted && a.replay != nil {
		fresh, err := a.replay.Accept(ctx, accountID, res.Counter, a.replayTTL(params))
		if err != nil {
			a.metrics.observe(ResultError, 0)
			a.log.ErrorContext(ctx, "totp replay check failed", logger.Error(err))
			return totp.VerificationResult{}, errors.Join(ErrReplayCheck, err)
		}
		if !fresh {
			res = totp.VerificationResult{}
		}
	}

	if !res.Accepted {
		a.metrics.observe(ResultRejected, 0)
		a.log.WarnContext(ctx, "totp code rejected")
		return res, nil
	}

	a.metrics.observe(ResultAccepted, res.Delta)
	a.log.InfoContext(ctx, "totp code accepted",
		logger.Counter(res.Counter),
		logger.Delta(res.Delta),
	)
	return res, nil
}

// replayTTL covers the longest time a matched counter can remain inside the
// drift window, plus one step.
func (a *Authenticator) replayTTL(params totp.Params) time.Duration {
	period := params.WithDefaults().Period
	return time.Duration(2*a.policy.DriftSteps+2) * time.Duration(period) * time.Second
}
