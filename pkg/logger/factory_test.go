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

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		require.NotNil(t, log)
		log.Info("hello")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithTextFormatter(),
		)
		log.Info("hello")
		out := buf.String()
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "hello")
	})

	t.Run("unknown format is ignored", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithFormat(logger.Format("xml")),
		)
		log.Info("hello")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("includes default attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithAttr(slog.String("svc", "test")),
		)
		log.Info("msg")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "test", entry["svc"])
	})

	t.Run("adds identifiers from context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		id := uuid.New()
		ctx := logger.ContextWithAccountID(context.Background(), "42")
		ctx = logger.ContextWithEnrollmentID(ctx, id)
		log.InfoContext(ctx, "context msg")
		var entry map[string]any
		err := json.Unmarshal(buf.Bytes(), &entry)
		require.NoError(t, err)
		assert.Equal(t, "42", entry["account_id"])
		assert.Equal(t, id.String(), entry["enrollment_id"])
	})
}

func TestEnvironmentOptions(t *testing.T) {
	tests := []struct {
		env     string
		wantEnv string
	}{
		{"production", "production"},
		{"prod", "production"},
		{"staging", "staging"},
		{"stage", "staging"},
		{"dev", "development"},
		{"", "development"},
		{"anything", "development"},
	}
	for _, tt := range tests {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment(tt.env, "otp"),
			logger.WithOutput(buf),
			logger.WithFormat(logger.FormatJSON),
		)
		log.Info("msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, tt.wantEnv, entry["env"], tt.env)
		assert.Equal(t, "otp", entry["service"])
	}
}

func TestDevelopmentEnvironment(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithEnvironment("development", "svc"),
		logger.WithOutput(buf),
	)
	log.Debug("msg")
	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "service=svc")
}

func TestRedaction(t *testing.T) {
	t.Run("default keys", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("msg", slog.String("secret", "JBSWY3DPEHPK3PXP"), slog.String("code", "123456"), logger.AccountID("42"))

		out := buf.String()
		assert.NotContains(t, out, "JBSWY3DPEHPK3PXP")
		assert.NotContains(t, out, "123456")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "[REDACTED]", entry["secret"])
		assert.Equal(t, "42", entry["account_id"])
	})

	t.Run("extra keys and caller ReplaceAttr", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithRedactedKeys("sealed"),
			logger.WithHandlerOptions(&slog.HandlerOptions{
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
		log.Info("msg", slog.String("sealed", "ciphertext"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "[REDACTED]", entry["sealed"])
		assert.NotContains(t, entry, "time")
	})
}

func TestNewFromConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.NewFromConfig(logger.Config{Env: "production", Service: "otpctl", Level: "warn"}, logger.WithOutput(buf))
	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "otpctl", entry["service"])
}

func TestNewFromConfig_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.NewFromConfig(logger.Config{Env: "production", Service: "otpctl", Format: "TEXT"}, logger.WithOutput(buf))
	log.Info("kept")
	assert.Contains(t, buf.String(), "msg=kept")
	assert.Contains(t, buf.String(), "env=production")
}
