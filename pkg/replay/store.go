package replay

import (
	"context"
	"time"
)

// Store records the last accepted TOTP counter per key so a code that was
// already used, or one older than it, is refused.
type Store interface {
	// Accept atomically records counter for key when it is strictly greater
	// than the last accepted counter. It returns false when the code is a replay.
	// A ttl of zero keeps the entry until it is superseded.
	Accept(ctx context.Context, key string, counter uint64, ttl time.Duration) (bool, error)

	// Reset forgets the recorded counter for key.
	Reset(ctx context.Context, key string) error
}
