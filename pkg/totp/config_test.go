package totp_test

import (
	"encoding/base64"
	"testing"

	"github.com/dmitrymomot/otpkit/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("TOTP_ISSUER", "Acme")
	t.Setenv("TOTP_ALGORITHM", "sha256")
	t.Setenv("TOTP_DIGITS", "8")

	cfg, err := totp.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.Issuer)
	assert.Equal(t, "sha256", cfg.Algorithm)
	assert.Equal(t, 8, cfg.Digits)
	assert.Equal(t, 30, cfg.Period)
	assert.Equal(t, 1, cfg.DriftSteps)
	assert.Equal(t, 20, cfg.SecretSize)

	// Cached for the rest of the process.
	t.Setenv("TOTP_ISSUER", "Other")
	again, err := totp.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := totp.ParseConfig(map[string]string{
		"TOTP_ISSUER":      "Acme",
		"TOTP_ALGORITHM":   "SHA512",
		"TOTP_DIGITS":      "7",
		"TOTP_PERIOD":      "60",
		"TOTP_DRIFT_STEPS": "0",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.Issuer)
	assert.Equal(t, "SHA512", cfg.Algorithm)
	assert.Equal(t, 7, cfg.Digits)
	assert.Equal(t, 60, cfg.Period)
	assert.Equal(t, 0, cfg.DriftSteps)
	assert.Equal(t, totp.DefaultSecretSize, cfg.SecretSize)

	tests := []struct {
		name    string
		environ map[string]string
		wantErr error
	}{
		{"missing issuer", map[string]string{"TOTP_DIGITS": "8"}, totp.ErrInvalidParameter},
		{"empty issuer", map[string]string{"TOTP_ISSUER": ""}, totp.ErrMissingIssuer},
		{"not a number", map[string]string{"TOTP_ISSUER": "Acme", "TOTP_DIGITS": "six"}, totp.ErrInvalidParameter},
		{"out of range", map[string]string{"TOTP_ISSUER": "Acme", "TOTP_DIGITS": "9"}, totp.ErrInvalidDigits},
		{"unknown algorithm", map[string]string{"TOTP_ISSUER": "Acme", "TOTP_ALGORITHM": "MD5"}, totp.ErrUnsupportedAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := totp.ParseConfig(tt.environ)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, totp.ErrInvalidParameter)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	valid := totp.DefaultConfig("Acme")
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*totp.Config)
		wantErr error
	}{
		{"missing issuer", func(c *totp.Config) { c.Issuer = "" }, totp.ErrMissingIssuer},
		{"bad algorithm", func(c *totp.Config) { c.Algorithm = "MD5" }, totp.ErrUnsupportedAlgorithm},
		{"too few digits", func(c *totp.Config) { c.Digits = 4 }, totp.ErrInvalidDigits},
		{"zero period", func(c *totp.Config) { c.Period = 0 }, totp.ErrInvalidPeriod},
		{"negative drift", func(c *totp.Config) { c.DriftSteps = -1 }, totp.ErrInvalidDriftSteps},
		{"weak secret", func(c *totp.Config) { c.SecretSize = 10 }, totp.ErrInvalidSecretSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := totp.DefaultConfig("Acme")
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, totp.ErrInvalidParameter)
		})
	}
}

func TestConfig_Params(t *testing.T) {
	t.Parallel()
	cfg := totp.DefaultConfig("Acme")
	cfg.Algorithm = "sha512"
	cfg.Digits = 8
	cfg.Period = 60

	secret := mustSecret(t, rfc4226Secret)
	p := cfg.Params("alice@example.com", secret)
	assert.Equal(t, "Acme", p.Issuer)
	assert.Equal(t, "alice@example.com", p.AccountName)
	assert.Equal(t, totp.AlgorithmSHA512, p.Algorithm)
	assert.Equal(t, 8, p.Digits)
	assert.Equal(t, 60, p.Period)
	assert.True(t, secret.Equal(p.Secret))
}

func TestConfig_EncryptionKeyBytes(t *testing.T) {
	t.Parallel()
	raw := make([]byte, totp.EncryptionKeySize)
	for i := range raw {
		raw[i] = byte(i)
	}

	cfg := totp.DefaultConfig("Acme")
	cfg.EncryptionKey = base64.StdEncoding.EncodeToString(raw)
	key, err := cfg.EncryptionKeyBytes()
	require.NoError(t, err)
	assert.Equal(t, raw, key)

	cfg.EncryptionKey = ""
	_, err = cfg.EncryptionKeyBytes()
	assert.ErrorIs(t, err, totp.ErrEncryptionKeyNotSet)

	cfg.EncryptionKey = "not base64!"
	_, err = cfg.EncryptionKeyBytes()
	assert.ErrorIs(t, err, totp.ErrInvalidEncryptionKey)

	cfg.EncryptionKey = base64.StdEncoding.EncodeToString(raw[:16])
	_, err = cfg.EncryptionKeyBytes()
	assert.ErrorIs(t, err, totp.ErrInvalidEncryptionKey)
}
