package totp

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"
	"unicode"
)

// MaxDriftSteps caps the drift window Verify searches. At the default
// period it spans well over a day in each direction.
const MaxDriftSteps = 1 << 12

// VerificationResult is the outcome of Verify.
// Counter and Delta are only meaningful when Accepted is true. Callers that
// want replay protection remember Counter per secret and reject any later
// result whose Counter is not greater.
type VerificationResult struct {
	Accepted bool
	Counter  uint64 // time step the code matched
	Delta    int    // Counter minus the time step at verification time
}

// Verify checks code against p at the given instant, tolerating driftSteps
// time steps of clock skew in either direction.
//
// A wrong, expired or malformed code is not an error: it yields a result
// with Accepted false, indistinguishable from any other rejection. Errors
// are returned only for invalid p or a negative driftSteps.
//
// Candidates are tried nearest-first (0, -1, +1, -2, +2, ...) so that an
// exact-time match is reported when several steps share a code. Values of
// driftSteps above 2 widen the guessing window and are discouraged; the
// window is clipped to MaxDriftSteps and to the counter range.
//
// Zero Digits, Period and Algorithm take the RFC 6238 defaults, see
// Params.WithDefaults. A negative Period is rejected.
func Verify(p Params, code string, at time.Time, driftSteps int) (VerificationResult, error) {
	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return VerificationResult{}, err
	}
	if driftSteps < 0 {
		return VerificationResult{}, errors.Join(ErrInvalidParameter, ErrInvalidDriftSteps)
	}
	current, err := Counter(at, p.Period)
	if err != nil {
		return VerificationResult{}, err
	}

	code = stripSpaces(code)
	if !isDecimal(code, p.Digits) {
		return VerificationResult{}, nil
	}
	submitted := []byte(code)

	match := func(delta int) (VerificationResult, bool, error) {
		counter, ok := shift(current, delta)
		if !ok {
			return VerificationResult{}, false, nil
		}
		expected, err := GenerateHOTP(p.Secret, counter, p.Digits, p.Algorithm)
		if err != nil {
			return VerificationResult{}, true, err
		}
		if subtle.ConstantTimeCompare([]byte(expected), submitted) == 1 {
			return VerificationResult{Accepted: true, Counter: counter, Delta: delta}, true, nil
		}
		return VerificationResult{}, true, nil
	}

	driftSteps = min(driftSteps, MaxDriftSteps)
	for i := 0; i <= driftSteps; i++ {
		inRange := false
		for _, delta := range [2]int{-i, i} {
			res, ok, err := match(delta)
			if err != nil {
				return VerificationResult{}, err
			}
			if res.Accepted {
				return res, nil
			}
			inRange = inRange || ok
			if i == 0 {
				break
			}
		}
		if !inRange {
			break
		}
	}

	return VerificationResult{}, nil
}

// shift applies delta to c, reporting false when the result leaves the uint64 range.
func shift(c uint64, delta int) (uint64, bool) {
	if delta < 0 {
		d := uint64(-delta)
		if d > c {
			return 0, false
		}
		return c - d, true
	}
	d := uint64(delta)
	if c > ^uint64(0)-d {
		return 0, false
	}
	return c + d, true
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isDecimal(s string, digits int) bool {
	if len(s) != digits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
