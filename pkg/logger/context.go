package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey int

const (
	accountIDKey ctxKey = iota
	enrollmentIDKey
)

// ContextWithAccountID stores the account identifier that loggers built by
// New (or wrapped by Contextual) attach to records logged with ctx.
func ContextWithAccountID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, accountIDKey, id)
}

// ContextWithEnrollmentID stores the enrollment session identifier.
func ContextWithEnrollmentID(ctx context.Context, id uuid.UUID) context.Context {
	if id == uuid.Nil {
		return ctx
	}
	return context.WithValue(ctx, enrollmentIDKey, id)
}

func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok
}

func EnrollmentIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(enrollmentIDKey).(uuid.UUID)
	return id, ok
}

// Contextual returns l with the context identifiers added to every record.
// Loggers built by New are returned unchanged.
func Contextual(l *slog.Logger) *slog.Logger {
	if l == nil {
		return nil
	}
	if _, ok := l.Handler().(*contextHandler); ok {
		return l
	}
	return slog.New(&contextHandler{next: l.Handler()})
}

// contextHandler appends account_id and enrollment_id from the record's
// context before delegating.
type contextHandler struct {
	next slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if id, ok := AccountIDFromContext(ctx); ok {
		rec.AddAttrs(AccountID(id))
	}
	if id, ok := EnrollmentIDFromContext(ctx); ok {
		rec.AddAttrs(EnrollmentID(id))
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name)}
}
