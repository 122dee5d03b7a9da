package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size of the application key
	KeySize = 32 // 256 bits for AES-256

	// infoPrefix provides domain separation for HKDF
	infoPrefix = "otpkit-secrets-v1:"
)

// Purpose names what a sealed value is used for. Values sealed for one
// purpose cannot be opened under another.
type Purpose string

const (
	// PurposeOTPSeed scopes sealing to TOTP shared secrets.
	PurposeOTPSeed Purpose = "otp_seed"
)

// Scope binds a sealed value to one account and purpose. It feeds both the
// key derivation and the AEAD additional data, so a ciphertext copied to
// another account's row fails to open.
type Scope struct {
	AccountID string
	Purpose   Purpose
}

func (s Scope) validate() error {
	if s.AccountID == "" || s.Purpose == "" {
		return ErrInvalidScope
	}
	return nil
}

// aad is length-prefixed so distinct scopes never serialize identically.
func (s Scope) aad() []byte {
	out := make([]byte, 0, 4+len(s.AccountID)+len(s.Purpose))
	out = appendField(out, string(s.Purpose))
	out = appendField(out, s.AccountID)
	return out
}

func appendField(b []byte, s string) []byte {
	n := len(s)
	b = append(b, byte(n>>8), byte(n))
	return append(b, s...)
}

// ValidateKey checks the application key length.
func ValidateKey(appKey []byte) error {
	if len(appKey) != KeySize {
		return ErrInvalidKey
	}
	return nil
}

// deriveKey creates a per-scope key from the application key using HKDF.
// The caller is responsible for clearing the returned key with clearBytes.
func deriveKey(appKey []byte, scope Scope) ([]byte, error) {
	info := append([]byte(infoPrefix), scope.aad()...)
	r := hkdf.New(sha256.New, appKey, []byte(scope.AccountID), info)

	derivedKey := make([]byte, KeySize)
	if _, err := io.ReadFull(r, derivedKey); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return derivedKey, nil
}

// clearBytes zeros out a byte slice holding key material.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateKey creates a new random 32-byte application key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
