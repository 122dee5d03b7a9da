package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/totp"
)

const rootCmdExample = `# Print a fresh sealing key for TOTP_ENCRYPTION_KEY
otpctl keygen

# Enroll an account and write its QR code
TOTP_ISSUER=Acme otpctl enroll --account alice@example.com --qr alice.png

# Show the current code for a secret
otpctl code --secret JBSWY3DPEHPK3PXP`

// policyFlags override the environment policy when set.
type policyFlags struct {
	issuer    string
	algorithm string
	digits    int
	period    int
	drift     int
}

func newRootCmd() *cobra.Command {
	var pf policyFlags

	root := &cobra.Command{
		Use:          "otpctl",
		Short:        "Operate TOTP secrets, codes and enrollments",
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := totp.CheckRandomSource(); err != nil {
				return fmt.Errorf("refusing to run: %w", err)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&pf.issuer, "issuer", "", "issuer name (overrides TOTP_ISSUER)")
	flags.StringVar(&pf.algorithm, "algorithm", "", "SHA1, SHA256 or SHA512 (overrides TOTP_ALGORITHM)")
	flags.IntVar(&pf.digits, "digits", 0, "code length 6-8 (overrides TOTP_DIGITS)")
	flags.IntVar(&pf.period, "period", 0, "time step in seconds (overrides TOTP_PERIOD)")
	flags.IntVar(&pf.drift, "drift", -1, "accepted steps of clock skew (overrides TOTP_DRIFT_STEPS)")

	root.AddCommand(
		newKeygenCmd(),
		newEnrollCmd(&pf),
		newCodeCmd(&pf),
		newVerifyCmd(&pf),
		newCheckRandCmd(),
	)
	return root
}

// cliIssuer labels policies used only to compute or check codes.
const cliIssuer = "otpctl"

// resolvePolicy overlays the policy flags on the process environment and
// validates the result. fallbackIssuer applies when neither sets an issuer.
func resolvePolicy(pf *policyFlags, fallbackIssuer string) (totp.Config, error) {
	environ := env.ToMap(os.Environ())
	if environ["TOTP_ISSUER"] == "" && fallbackIssuer != "" {
		environ["TOTP_ISSUER"] = fallbackIssuer
	}

	if pf.issuer != "" {
		environ["TOTP_ISSUER"] = pf.issuer
	}
	if pf.algorithm != "" {
		environ["TOTP_ALGORITHM"] = pf.algorithm
	}
	if pf.digits != 0 {
		environ["TOTP_DIGITS"] = strconv.Itoa(pf.digits)
	}
	if pf.period != 0 {
		environ["TOTP_PERIOD"] = strconv.Itoa(pf.period)
	}
	if pf.drift >= 0 {
		environ["TOTP_DRIFT_STEPS"] = strconv.Itoa(pf.drift)
	}

	cfg, err := totp.ParseConfig(environ)
	if err != nil {
		return totp.Config{}, fmt.Errorf("invalid TOTP policy: %w", err)
	}
	return cfg, nil
}

// newLogger writes to stderr so command output stays clean for scripts.
func newLogger(cmd *cobra.Command) *slog.Logger {
	var cfg logger.Config
	if err := env.Parse(&cfg); err != nil {
		cfg = logger.Config{Env: "development", Service: "otpctl"}
	}
	return logger.NewFromConfig(cfg,
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithTextFormatter(),
		logger.WithAttr(slog.String("command", cmd.Name())),
	)
}

// parseAt accepts empty (now), unix seconds or RFC 3339.
func parseAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: want unix seconds or RFC 3339", s)
	}
	return t, nil
}

// paramsFromFlags builds params from --uri, or from --secret plus policy.
func paramsFromFlags(pf *policyFlags, secret, uri string) (totp.Params, totp.Config, error) {
	switch {
	case uri != "":
		p, err := totp.ParseURI(uri)
		if err != nil {
			return totp.Params{}, totp.Config{}, err
		}
		cfg, err := resolvePolicy(pf, cmp.Or(p.Issuer, cliIssuer))
		return p, cfg, err
	case secret != "":
		s, err := totp.ParseSecret(secret)
		if err != nil {
			return totp.Params{}, totp.Config{}, err
		}
		cfg, err := resolvePolicy(pf, cliIssuer)
		if err != nil {
			return totp.Params{}, totp.Config{}, err
		}
		p := cfg.Params("", s)
		return p, cfg, p.Validate()
	default:
		return totp.Params{}, totp.Config{}, fmt.Errorf("one of --secret or --uri is required")
	}
}
