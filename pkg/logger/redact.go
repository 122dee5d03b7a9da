package logger

import (
	"log/slog"
	"slices"
)

const redacted = "[REDACTED]"

// withRedaction returns a copy of opts whose ReplaceAttr masks the given keys
// and then runs the caller's ReplaceAttr, if any.
func withRedaction(opts *slog.HandlerOptions, keys []string) *slog.HandlerOptions {
	out := *opts
	next := opts.ReplaceAttr
	out.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if slices.Contains(keys, a.Key) {
			a = slog.String(a.Key, redacted)
		}
		if next != nil {
			return next(groups, a)
		}
		return a
	}
	return &out
}
