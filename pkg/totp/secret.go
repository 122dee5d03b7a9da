package totp

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"
	"log/slog"
)

const (
	DefaultSecretSize = 20 // 160 bits, RFC 4226 recommendation
	MinSecretSize     = 16 // 128 bits, RFC 4226 lower bound
)

const redacted = "[REDACTED]"

// Secret is the shared key between the server and the authenticator app.
// The zero value is an empty secret and is rejected by every operation.
// Its textual forms (String, GoString, LogValue) are redacted, so a Secret
// can be passed to a logger or wrapped into an error without leaking.
type Secret struct {
	b []byte
}

// NewSecret copies b into a Secret. Imported keys may be shorter than
// MinSecretSize; only GenerateSecret enforces the minimum.
func NewSecret(b []byte) (Secret, error) {
	if len(b) == 0 {
		return Secret{}, errors.Join(ErrInvalidParameter, ErrMissingSecret)
	}
	return Secret{b: bytes.Clone(b)}, nil
}

// ParseSecret decodes the base32 manual-entry form of a secret.
func ParseSecret(text string) (Secret, error) {
	b, err := DecodeBase32(text)
	if err != nil {
		return Secret{}, err
	}
	if len(b) == 0 {
		return Secret{}, errors.Join(ErrInvalidBase32, ErrMissingSecret)
	}
	return Secret{b: b}, nil
}

// GenerateSecret draws size bytes from the platform CSPRNG.
// There is no fallback: a failing source yields ErrInsecureRandomUnavailable.
func GenerateSecret(size int) (Secret, error) {
	return GenerateSecretFrom(rand.Reader, size)
}

// GenerateSecretFrom is GenerateSecret with an explicit entropy source.
// r must be cryptographically secure.
func GenerateSecretFrom(r io.Reader, size int) (Secret, error) {
	if size < MinSecretSize {
		return Secret{}, errors.Join(ErrInvalidParameter, ErrSecretTooShort)
	}
	if r == nil {
		return Secret{}, ErrInsecureRandomUnavailable
	}

	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return Secret{}, errors.Join(ErrInsecureRandomUnavailable, err)
	}
	return Secret{b: b}, nil
}

// CheckRandomSource verifies once, at process start, that the platform
// CSPRNG can be read. A non-nil error must stop the process.
func CheckRandomSource() error {
	return checkRandomSource(rand.Reader)
}

func checkRandomSource(r io.Reader) error {
	if r == nil {
		return ErrInsecureRandomUnavailable
	}
	sample := make([]byte, 32)
	if _, err := io.ReadFull(r, sample); err != nil {
		return errors.Join(ErrInsecureRandomUnavailable, err)
	}
	// 256 zero bits from a working CSPRNG does not happen.
	if bytes.Equal(sample, make([]byte, len(sample))) {
		return ErrInsecureRandomUnavailable
	}
	return nil
}

// Bytes returns a copy of the raw key.
func (s Secret) Bytes() []byte {
	return bytes.Clone(s.b)
}

// Len returns the key length in bytes.
func (s Secret) Len() int {
	return len(s.b)
}

// IsZero reports whether s holds no key material.
func (s Secret) IsZero() bool {
	return len(s.b) == 0
}

// Base32 returns the manual-entry form shown to the user and used in URIs.
func (s Secret) Base32() string {
	return EncodeBase32(s.b)
}

// Equal compares two secrets in constant time.
func (s Secret) Equal(other Secret) bool {
	return subtle.ConstantTimeCompare(s.b, other.b) == 1
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return "totp.Secret{" + redacted + "}"
}

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
