package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// AccountID records the account identifier under the key "account_id".
// If id is nil, it returns an empty Attr.
func AccountID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("account_id", id)
}

// Issuer records the provisioning issuer under the key "issuer".
func Issuer(name string) slog.Attr {
	return slog.String("issuer", name)
}

// EnrollmentID records the enrollment session identifier under the key "enrollment_id".
// If id is nil, it returns an empty Attr.
func EnrollmentID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("enrollment_id", id)
}

// Counter records a TOTP time-step counter under the key "counter".
func Counter(c uint64) slog.Attr {
	return slog.Uint64("counter", c)
}

// Delta records the matched step offset under the key "delta".
func Delta(d int) slog.Attr {
	return slog.Int("delta", d)
}

// State records a state name under the key "state".
func State(s any) slog.Attr {
	return slog.Any("state", s)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
