package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestAccountID(t *testing.T) {
	attr := logger.AccountID("123")
	require.Equal(t, "account_id", attr.Key)
	assert.Equal(t, "123", attr.Value.Any())
	assert.True(t, logger.AccountID(nil).Equal(slog.Attr{}))
}

func TestEnrollmentID(t *testing.T) {
	attr := logger.EnrollmentID("e1")
	require.Equal(t, "enrollment_id", attr.Key)
	assert.Equal(t, "e1", attr.Value.Any())
	assert.True(t, logger.EnrollmentID(nil).Equal(slog.Attr{}))
}

func TestCounterAndDelta(t *testing.T) {
	c := logger.Counter(37037036)
	require.Equal(t, "counter", c.Key)
	assert.Equal(t, uint64(37037036), c.Value.Uint64())

	d := logger.Delta(-1)
	require.Equal(t, "delta", d.Key)
	assert.Equal(t, int64(-1), d.Value.Int64())
}

func TestStringAttrs(t *testing.T) {
	assert.True(t, logger.Issuer("Acme").Equal(slog.String("issuer", "Acme")))
	assert.True(t, logger.Component("authenticator").Equal(slog.String("component", "authenticator")))
	assert.True(t, logger.Event("confirm").Equal(slog.String("event", "confirm")))
	assert.Equal(t, "state", logger.State("verified").Key)
}
