package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// SealString seals plaintext and returns base64 text suitable for a text column.
func SealString(appKey []byte, scope Scope, plaintext []byte) (string, error) {
	ciphertext, err := Seal(appKey, scope, plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// OpenString reverses SealString.
func OpenString(appKey []byte, scope Scope, sealed string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, errors.Join(ErrInvalidCiphertext, err)
	}
	return Open(appKey, scope, ciphertext)
}

// Seal encrypts plaintext with AES-256-GCM under a key derived for scope.
// Returns ciphertext in format: nonce + encrypted data + tag
func Seal(appKey []byte, scope Scope, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(appKey, scope)
	if err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}

	return aead.Seal(nonce, nonce, plaintext, scope.aad()), nil
}

// Open decrypts a value produced by Seal for the same scope.
func Open(appKey []byte, scope Scope, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(appKey, scope)
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}

	nonceSize := aead.NonceSize()
	if len(ciphertext) < nonceSize+aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}
	nonce, body := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := aead.Open(nil, nonce, body, scope.aad())
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}
	return plaintext, nil
}

func newAEAD(appKey []byte, scope Scope) (cipher.AEAD, error) {
	if err := ValidateKey(appKey); err != nil {
		return nil, err
	}
	if err := scope.validate(); err != nil {
		return nil, err
	}

	key, err := deriveKey(appKey, scope)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
