package authenticator

import "errors"

var (
	ErrMissingAccountID = errors.New("account id is required")
	ErrReplayCheck      = errors.New("replay check failed")
)
