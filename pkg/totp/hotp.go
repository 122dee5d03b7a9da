package totp

import (
	"crypto/hmac"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	MinDigits = 6
	MaxDigits = 8
)

var pow10 = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000}

// GenerateHOTP implements the RFC 4226 HMAC-based One-Time Password algorithm.
// The result is always exactly digits characters long, left-padded with zeros.
func GenerateHOTP(secret Secret, counter uint64, digits int, algorithm Algorithm) (string, error) {
	if secret.IsZero() {
		return "", errors.Join(ErrInvalidParameter, ErrMissingSecret)
	}
	if digits < MinDigits || digits > MaxDigits {
		return "", errors.Join(ErrInvalidParameter, ErrInvalidDigits)
	}
	newHash, err := algorithm.hash()
	if err != nil {
		return "", err
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(newHash, secret.b)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation: the low nibble of the last byte picks a 4-byte
	// window, read big-endian with the sign bit cleared.
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%0*d", digits, code%pow10[digits]), nil
}
