package enrollment

import (
	"errors"
	"fmt"
)

var (
	ErrNilAuthenticator = errors.New("authenticator is required")
	ErrMissingAccountID = errors.New("account id is required")
	ErrExpired          = errors.New("enrollment expired")
	ErrSealingDisabled  = errors.New("no sealing key configured")
	ErrSecretNotIssued  = errors.New("enrollment has no issued secret")
	ErrEmptyContent     = errors.New("qr content cannot be empty")
	ErrQRCodeFailed     = errors.New("failed to generate QR code")
)

// ErrNoTransitionAvailable indicates no valid transition exists for the given state/event combination.
type ErrNoTransitionAvailable struct {
	StateName string
	EventName string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.StateName, e.EventName)
}

func NewErrNoTransitionAvailable(stateName, eventName string) *ErrNoTransitionAvailable {
	return &ErrNoTransitionAvailable{
		StateName: stateName,
		EventName: eventName,
	}
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}
