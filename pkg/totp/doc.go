// Package totp implements the time-based one-time password primitive:
// secret generation, HOTP/TOTP code derivation (RFC 4226, RFC 6238),
// otpauth:// provisioning URIs, and verification with a bounded drift window.
//
// Every function is pure over its inputs. There is no package state besides
// the cached environment policy loaded by LoadConfig, nothing is logged and
// nothing is persisted, so all functions are safe for concurrent use.
//
// # Architecture
//
//   - secret.go  - Secret, an immutable key whose textual forms are redacted,
//     GenerateSecret backed by crypto/rand, and CheckRandomSource for a
//     one-time capability check at process start.
//   - base32.go  - EncodeBase32/DecodeBase32, the manual-entry and storage form.
//   - hotp.go    - GenerateHOTP with dynamic truncation.
//   - otp.go     - Params, Counter and GenerateTOTP.
//   - uri.go     - BuildURI and ParseURI for the Key Uri Format.
//   - verify.go  - Verify, which checks a submitted code nearest-step-first
//     using constant-time comparison.
//   - config.go  - deployment-wide policy from TOTP_* environment variables.
//
// # Usage
//
//	if err := totp.CheckRandomSource(); err != nil {
//	    log.Fatal(err) // no secure randomness, refuse to start
//	}
//
//	secret, err := totp.GenerateSecret(totp.DefaultSecretSize)
//	if err != nil {
//	    return err
//	}
//	params := totp.Params{Secret: secret, Issuer: "Acme", AccountName: "alice@example.com"}
//
//	uri, err := totp.BuildURI(params) // render as QR, show secret.Base32() as fallback
//
//	// Later, when the user submits a code:
//	res, err := totp.Verify(params, "123456", time.Now(), totp.DefaultDriftSteps)
//	if err != nil {
//	    return err // misconfiguration, never a wrong code
//	}
//	if res.Accepted {
//	    // store res.Counter to reject replays of the same code
//	}
//
// # Error Handling
//
// Errors are built with errors.Join from a category and a detail sentinel.
// Match categories with errors.Is: ErrInsecureRandomUnavailable (fatal),
// ErrInvalidBase32 (ask the user to re-enter) and ErrInvalidParameter
// (programmer error). Wrong or malformed codes are never reported as errors.
//
// # See Also
//
//   - RFC 4226 - HMAC-Based One-Time Password (HOTP) Algorithm
//   - RFC 6238 - Time-Based One-Time Password (TOTP) Algorithm
//   - RFC 4648 - Base32 encoding
package totp
