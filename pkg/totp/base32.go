package totp

import (
	"encoding/base32"
	"errors"
	"strings"
)

// b32 is the RFC 4648 alphabet without padding, the form authenticator apps expect.
var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

var (
	errForeignCharacter = errors.New("character outside the base32 alphabet")
	errImpossibleLength = errors.New("length does not correspond to a whole number of bytes")
)

// EncodeBase32 returns the uppercase, unpadded base32 form of b.
func EncodeBase32(b []byte) string {
	return b32.EncodeToString(b)
}

// DecodeBase32 decodes text produced by EncodeBase32 or typed in by a user.
// Letter case and whitespace are ignored and trailing "=" padding is optional.
// The input itself never appears in the returned error.
func DecodeBase32(text string) ([]byte, error) {
	s := strings.ToUpper(strings.Join(strings.Fields(text), ""))
	s = strings.TrimRight(s, "=")

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '2' || c > '7') {
			return nil, errors.Join(ErrInvalidBase32, errForeignCharacter)
		}
	}

	// 5-bit groups only land on a byte boundary for these remainders.
	switch len(s) % 8 {
	case 1, 3, 6:
		return nil, errors.Join(ErrInvalidBase32, errImpossibleLength)
	}

	b, err := b32.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidBase32, err)
	}
	return b, nil
}
