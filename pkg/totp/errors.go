package totp

import "errors"

// Error categories. Detail errors below are joined with one of these so
// callers can branch on the category with errors.Is.
var (
	// ErrInsecureRandomUnavailable is fatal: enrollment must abort.
	ErrInsecureRandomUnavailable = errors.New("cryptographically secure random source unavailable")
	// ErrInvalidBase32 means the input should be rejected and re-entered.
	ErrInvalidBase32 = errors.New("invalid base32 secret")
	// ErrInvalidParameter signals a misconfiguration, not a user error.
	ErrInvalidParameter = errors.New("invalid parameter")
)

var (
	ErrSecretTooShort       = errors.New("secret is shorter than the allowed minimum")
	ErrMissingSecret        = errors.New("missing secret")
	ErrMissingAccountName   = errors.New("missing account name")
	ErrMissingIssuer        = errors.New("missing issuer")
	ErrInvalidDigits        = errors.New("digits must be between 6 and 8")
	ErrInvalidPeriod        = errors.New("period must be greater than zero")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm, must be SHA1, SHA256 or SHA512")
	ErrInvalidDriftSteps    = errors.New("drift steps must not be negative")
	ErrTimeBeforeEpoch      = errors.New("time is before the unix epoch")
	ErrInvalidURI           = errors.New("invalid otpauth URI")
	ErrInvalidSecretSize    = errors.New("invalid secret size")
	ErrEncryptionKeyNotSet  = errors.New("TOTP encryption key not set")
	ErrInvalidEncryptionKey = errors.New("encryption key must be base64 of 32 bytes")
)
