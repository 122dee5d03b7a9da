// Package secrets seals TOTP shared secrets before they are handed to
// durable storage.
//
// A single 32-byte application key is expanded with HKDF-SHA-256 into a
// per-account key. The account id and a purpose label are also bound as
// AES-GCM additional data, so a sealed value only opens for the account it
// was sealed for.
//
// # Usage
//
//	appKey, _ := secrets.GenerateKey() // once, kept in TOTP_ENCRYPTION_KEY
//
//	scope := secrets.Scope{AccountID: "42", Purpose: secrets.PurposeOTPSeed}
//	sealed, err := secrets.SealString(appKey, scope, secret.Bytes())
//
//	raw, err := secrets.OpenString(appKey, scope, sealed)
//
// # Error Handling
//
// Errors wrap ErrSealFailed, ErrOpenFailed or ErrInvalidCiphertext and can
// be matched with errors.Is.
package secrets
