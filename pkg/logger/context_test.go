package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/logger"
)

func TestContextIDs(t *testing.T) {
	ctx := context.Background()

	_, ok := logger.AccountIDFromContext(ctx)
	assert.False(t, ok)
	_, ok = logger.EnrollmentIDFromContext(ctx)
	assert.False(t, ok)

	assert.Equal(t, ctx, logger.ContextWithAccountID(ctx, ""))
	assert.Equal(t, ctx, logger.ContextWithEnrollmentID(ctx, uuid.Nil))

	id := uuid.New()
	ctx = logger.ContextWithEnrollmentID(logger.ContextWithAccountID(ctx, "alice"), id)

	account, ok := logger.AccountIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", account)

	enrollment, ok := logger.EnrollmentIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, enrollment)
}

func TestContextual(t *testing.T) {
	t.Run("wraps a plain logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.Contextual(slog.New(slog.NewJSONHandler(buf, nil)))

		ctx := logger.ContextWithAccountID(context.Background(), "alice")
		log.With(logger.Component("test")).WithGroup("g").InfoContext(ctx, "msg")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "test", entry["component"])
		group, ok := entry["g"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice", group["account_id"])
	})

	t.Run("keeps loggers from New", func(t *testing.T) {
		log := logger.New(logger.WithOutput(&bytes.Buffer{}))
		assert.Same(t, log, logger.Contextual(log))
		derived := log.With("k", "v")
		assert.Same(t, derived, logger.Contextual(derived))
	})

	t.Run("no duplicate attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.Contextual(logger.New(logger.WithOutput(buf)))

		ctx := logger.ContextWithAccountID(context.Background(), "alice")
		log.InfoContext(ctx, "msg")
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"account_id"`)))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, logger.Contextual(nil))
	})
}
