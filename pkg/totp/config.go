package totp

import (
	"encoding/base64"
	"errors"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

// EncryptionKeySize is the AES-256 key length expected in TOTP_ENCRYPTION_KEY.
const EncryptionKeySize = 32

var (
	cfg     Config
	cfgErr  error
	cfgOnce sync.Once
)

// Config is the deployment-wide TOTP policy. Every secret issued under it
// shares the same algorithm, digits and period.
type Config struct {
	Issuer        string `env:"TOTP_ISSUER,required"`              // Name shown in authenticator apps
	Algorithm     string `env:"TOTP_ALGORITHM" envDefault:"SHA1"`  // SHA1, SHA256 or SHA512
	Digits        int    `env:"TOTP_DIGITS" envDefault:"6"`        // 6 to 8
	Period        int    `env:"TOTP_PERIOD" envDefault:"30"`       // Seconds per time step
	DriftSteps    int    `env:"TOTP_DRIFT_STEPS" envDefault:"1"`   // Accepted steps of clock skew either side
	SecretSize    int    `env:"TOTP_SECRET_SIZE" envDefault:"20"`  // Bytes of entropy per secret
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY" envDefault:""` // Base64 32-byte key for sealing secrets at rest
}

// DefaultConfig returns the RFC 6238 defaults for the given issuer.
func DefaultConfig(issuer string) Config {
	return Config{
		Issuer:     issuer,
		Algorithm:  string(DefaultAlgorithm),
		Digits:     DefaultDigits,
		Period:     DefaultPeriod,
		DriftSteps: DefaultDriftSteps,
		SecretSize: DefaultSecretSize,
	}
}

// LoadConfig parses the policy from the process environment once per process.
// Subsequent calls return the cached result, including a cached error.
func LoadConfig() (Config, error) {
	cfgOnce.Do(func() {
		cfg, cfgErr = ParseConfig(env.ToMap(os.Environ()))
	})
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	return cfg, nil
}

// ParseConfig reads and validates the policy from environ, a map of
// variable names to values. Unlike LoadConfig it does not cache, so callers
// can layer overrides on top of the process environment.
func ParseConfig(environ map[string]string) (Config, error) {
	c, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return Config{}, errors.Join(ErrInvalidParameter, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects a policy that would produce unusable credentials.
func (c Config) Validate() error {
	if c.Issuer == "" {
		return errors.Join(ErrInvalidParameter, ErrMissingIssuer)
	}
	if _, err := ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if c.Digits < MinDigits || c.Digits > MaxDigits {
		return errors.Join(ErrInvalidParameter, ErrInvalidDigits)
	}
	if c.Period <= 0 {
		return errors.Join(ErrInvalidParameter, ErrInvalidPeriod)
	}
	if c.DriftSteps < 0 {
		return errors.Join(ErrInvalidParameter, ErrInvalidDriftSteps)
	}
	if c.SecretSize < MinSecretSize {
		return errors.Join(ErrInvalidParameter, ErrInvalidSecretSize)
	}
	return nil
}

// Params binds the policy to one account's secret.
func (c Config) Params(accountName string, secret Secret) Params {
	alg, err := ParseAlgorithm(c.Algorithm)
	if err != nil {
		alg = Algorithm(c.Algorithm) // rejected later by Params.Validate
	}
	return Params{
		Secret:      secret,
		AccountName: accountName,
		Issuer:      c.Issuer,
		Algorithm:   alg,
		Digits:      c.Digits,
		Period:      c.Period,
	}
}

// EncryptionKeyBytes decodes EncryptionKey into the raw 32-byte sealing key.
func (c Config) EncryptionKeyBytes() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, errors.Join(ErrInvalidParameter, ErrEncryptionKeyNotSet)
	}
	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidParameter, ErrInvalidEncryptionKey, err)
	}
	if len(key) != EncryptionKeySize {
		return nil, errors.Join(ErrInvalidParameter, ErrInvalidEncryptionKey)
	}
	return key, nil
}
