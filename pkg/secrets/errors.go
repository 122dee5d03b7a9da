package secrets

import "errors"

var (
	// Key validation errors
	ErrInvalidKey   = errors.New("invalid key: must be 32 bytes")
	ErrInvalidScope = errors.New("invalid scope: account id and purpose are required")

	// Sealing errors
	ErrSealFailed        = errors.New("seal failed")
	ErrOpenFailed        = errors.New("open failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// Key derivation errors
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
