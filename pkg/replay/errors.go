package replay

import "errors"

var (
	ErrEmptyKey                     = errors.New("replay key must not be empty")
	ErrStoreFailed                  = errors.New("replay store operation failed")
	ErrUnexpectedReply              = errors.New("unexpected reply from replay store")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)
