package totp

import (
	"errors"
	"time"
)

const (
	DefaultDigits     = 6             // Standard 6-digit TOTP codes
	DefaultPeriod     = 30            // 30-second validity window (RFC 6238 standard)
	DefaultAlgorithm  = AlgorithmSHA1 // HMAC-SHA1 algorithm (RFC 6238 standard)
	DefaultDriftSteps = 1             // One step either side of the current one
)

// Params describes one provisioned TOTP credential.
// Digits, Period and Algorithm are fixed for the lifetime of Secret: changing
// any of them invalidates what the authenticator app already holds.
type Params struct {
	Secret      Secret    // Shared key (required)
	AccountName string    // User identifier like email (required for URIs)
	Issuer      string    // Service name displayed in authenticator apps (required for URIs)
	Algorithm   Algorithm // HMAC algorithm (optional, defaults to SHA1)
	Digits      int       // Number of digits in generated codes (optional, defaults to 6)
	Period      int       // Code validity period in seconds (optional, defaults to 30)
}

// WithDefaults returns a copy with RFC 6238 standard defaults applied to zero-valued fields.
func (p Params) WithDefaults() Params {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	return p
}

// Validate checks what code generation needs. Issuer and AccountName are
// only checked by BuildURI.
func (p Params) Validate() error {
	if p.Secret.IsZero() {
		return errors.Join(ErrInvalidParameter, ErrMissingSecret)
	}
	if !p.Algorithm.Valid() {
		return errors.Join(ErrInvalidParameter, ErrUnsupportedAlgorithm)
	}
	if p.Digits < MinDigits || p.Digits > MaxDigits {
		return errors.Join(ErrInvalidParameter, ErrInvalidDigits)
	}
	if p.Period <= 0 {
		return errors.Join(ErrInvalidParameter, ErrInvalidPeriod)
	}
	return nil
}

// Counter returns the RFC 6238 time step containing t: floor(unix / period).
// A period <= 0 fails with ErrInvalidParameter; it applies no defaults.
func Counter(t time.Time, period int) (uint64, error) {
	if period <= 0 {
		return 0, errors.Join(ErrInvalidParameter, ErrInvalidPeriod)
	}
	unix := t.Unix()
	if unix < 0 {
		return 0, errors.Join(ErrInvalidParameter, ErrTimeBeforeEpoch)
	}
	return uint64(unix) / uint64(period), nil
}

// GenerateTOTP returns the code for the time step containing at.
// Passing the instant explicitly keeps the function pure; use time.Now()
// for the current code.
//
// Zero Digits, Period and Algorithm mean "unset" and take the RFC 6238
// defaults (see WithDefaults). A negative Period is rejected. Counter is
// the primitive that rejects any period <= 0.
func GenerateTOTP(p Params, at time.Time) (string, error) {
	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return "", err
	}
	counter, err := Counter(at, p.Period)
	if err != nil {
		return "", err
	}
	return GenerateHOTP(p.Secret, counter, p.Digits, p.Algorithm)
}

// Remaining returns how long the code for at stays current.
func Remaining(at time.Time, period int) time.Duration {
	if period <= 0 {
		return 0
	}
	p := int64(period)
	elapsed := at.Unix() % p
	if elapsed < 0 {
		elapsed += p
	}
	return time.Duration(p-elapsed) * time.Second
}
