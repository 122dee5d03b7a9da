package enrollment

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/otpkit/pkg/authenticator"
	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/secrets"
	"github.com/dmitrymomot/otpkit/pkg/totp"
)

// DefaultTTL bounds how long an issued secret waits for its first code.
const DefaultTTL = 10 * time.Minute

// Service drives enrollment sessions: it issues a secret once, seals it for
// storage and confirms the first code through an Authenticator.
type Service struct {
	auth    *authenticator.Authenticator
	policy  totp.Config
	sealKey []byte
	ttl     time.Duration
	clock   authenticator.Clock
	random  io.Reader
	log     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSealingKey sets the 32-byte application key used by Seal and Restore.
func WithSealingKey(key []byte) Option {
	return func(s *Service) {
		s.sealKey = key
	}
}

// WithTTL sets how long an issued secret stays confirmable.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source for issue and expiry.
func WithClock(c authenticator.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRandom overrides the entropy source for secrets.
func WithRandom(r io.Reader) Option {
	return func(s *Service) {
		if r != nil {
			s.random = r
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService builds a Service on top of auth, sharing its policy.
func NewService(auth *authenticator.Authenticator, opts ...Option) (*Service, error) {
	if auth == nil {
		return nil, ErrNilAuthenticator
	}

	s := &Service{
		auth:   auth,
		policy: auth.Policy(),
		ttl:    DefaultTTL,
		clock:  authenticator.SystemClock{},
		random: rand.Reader,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.sealKey != nil {
		if err := secrets.ValidateKey(s.sealKey); err != nil {
			return nil, err
		}
	}
	s.log = logger.Contextual(s.log).With(logger.Component("enrollment"))

	return s, nil
}

// Begin issues a fresh secret for accountID. accountName is the label shown
// in the authenticator app, usually an email address. The returned session
// is in StateSecretIssued.
func (s *Service) Begin(ctx context.Context, accountID, accountName string) (*Enrollment, error) {
	if accountID == "" {
		return nil, ErrMissingAccountID
	}

	e := &Enrollment{
		ID:        uuid.New(),
		AccountID: accountID,
		State:     StateUnenrolled,
	}
	if err := s.issue(sessionContext(ctx, e), e, accountName); err != nil {
		return nil, err
	}
	return e, nil
}

// Reissue gives an abandoned session a new secret and a new expiry. The old
// secret is discarded; the user must scan the new URI.
func (s *Service) Reissue(ctx context.Context, e *Enrollment) error {
	if !CanTransition(e.State, EventIssue) {
		return NewErrNoTransitionAvailable(e.State.Name(), EventIssue.Name())
	}
	return s.issue(sessionContext(ctx, e), e, e.Params.AccountName)
}

// issue generates the secret and moves e to StateSecretIssued. e is left
// untouched on error.
func (s *Service) issue(ctx context.Context, e *Enrollment, accountName string) error {
	secret, err := totp.GenerateSecretFrom(s.random, s.policy.SecretSize)
	if err != nil {
		s.log.ErrorContext(ctx, "secret generation failed", logger.Error(err))
		return err
	}

	params := s.policy.Params(accountName, secret)
	uri, err := totp.BuildURI(params)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	e.Params = params
	e.URI = uri
	e.IssuedAt = now
	e.ExpiresAt = now.Add(s.ttl)
	e.VerifiedAt = time.Time{}
	s.fire(ctx, e, EventIssue)
	return nil
}

// Seal encrypts the session's secret for durable storage, bound to its account.
func (s *Service) Seal(e *Enrollment) (string, error) {
	if s.sealKey == nil {
		return "", ErrSealingDisabled
	}
	if e.Params.Secret.IsZero() {
		return "", ErrSecretNotIssued
	}
	scope := secrets.Scope{AccountID: e.AccountID, Purpose: secrets.PurposeOTPSeed}
	return secrets.SealString(s.sealKey, scope, e.Params.Secret.Bytes())
}

// Restore rebuilds verification params from a value produced by Seal.
// The secret is decrypted, never regenerated.
func (s *Service) Restore(accountID, accountName, sealed string) (totp.Params, error) {
	if s.sealKey == nil {
		return totp.Params{}, ErrSealingDisabled
	}
	scope := secrets.Scope{AccountID: accountID, Purpose: secrets.PurposeOTPSeed}
	raw, err := secrets.OpenString(s.sealKey, scope, sealed)
	if err != nil {
		return totp.Params{}, err
	}
	secret, err := totp.NewSecret(raw)
	if err != nil {
		return totp.Params{}, err
	}
	return s.policy.Params(accountName, secret), nil
}

// Confirm checks the first code from the user's app. On success the session
// moves to StateVerified. A wrong code leaves it in StateSecretIssued and
// returns false with a nil error. Past its expiry the session moves to
// StateAbandoned and ErrExpired is returned.
func (s *Service) Confirm(ctx context.Context, e *Enrollment, code string) (bool, error) {
	if !CanTransition(e.State, EventConfirm) {
		return false, NewErrNoTransitionAvailable(e.State.Name(), EventConfirm.Name())
	}
	ctx = sessionContext(ctx, e)

	now := s.clock.Now()
	if e.Expired(now) {
		s.fire(ctx, e, EventExpire)
		s.log.WarnContext(ctx, "enrollment expired")
		return false, ErrExpired
	}

	res, err := s.auth.Verify(ctx, e.AccountID, e.Params, code)
	if err != nil {
		return false, err
	}
	if !res.Accepted {
		return false, nil
	}

	s.fire(ctx, e, EventConfirm)
	e.VerifiedAt = now
	return true, nil
}

// Abandon cancels an unconfirmed session.
func (s *Service) Abandon(ctx context.Context, e *Enrollment) error {
	if !CanTransition(e.State, EventAbandon) {
		return NewErrNoTransitionAvailable(e.State.Name(), EventAbandon.Name())
	}
	s.fire(sessionContext(ctx, e), e, EventAbandon)
	return nil
}

// fire applies a transition already checked by the caller.
func (s *Service) fire(ctx context.Context, e *Enrollment, event Event) {
	from := e.State
	to, err := Transition(from, event)
	if err != nil {
		s.log.ErrorContext(ctx, "enrollment transition failed", logger.Error(err))
		return
	}
	e.State = to
	s.log.InfoContext(ctx, "enrollment state changed",
		logger.Event(event.Name()),
		slog.String("from", from.Name()),
		logger.State(to),
	)
}


// sessionContext tags ctx with the session identifiers for logging.
func sessionContext(ctx context.Context, e *Enrollment) context.Context {
	ctx = logger.ContextWithAccountID(ctx, e.AccountID)
	return logger.ContextWithEnrollmentID(ctx, e.ID)
}
