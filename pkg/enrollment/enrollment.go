package enrollment

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/otpkit/pkg/totp"
)

// Enrollment is one attempt to bind an authenticator app to an account.
// It is a value owned by the caller; Service methods mutate it in place.
type Enrollment struct {
	ID         uuid.UUID
	AccountID  string
	State      State
	Params     totp.Params
	URI        string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	VerifiedAt time.Time
}

// Expired reports whether the session can no longer be confirmed at now.
func (e *Enrollment) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// ManualEntryKey is the Base32 secret shown next to the QR code.
func (e *Enrollment) ManualEntryKey() string {
	return e.Params.Secret.Base32()
}
