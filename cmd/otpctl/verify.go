package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/otpkit/pkg/authenticator"
)

var errRejected = errors.New("code rejected")

func newVerifyCmd(pf *policyFlags) *cobra.Command {
	var secret, uri, code, at string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a code against a secret; exits non-zero when rejected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, policy, err := paramsFromFlags(pf, secret, uri)
			if err != nil {
				return err
			}
			when, err := parseAt(at)
			if err != nil {
				return err
			}

			auth, err := authenticator.New(policy,
				authenticator.WithClock(authenticator.FixedClock{Time: when}),
				authenticator.WithLogger(newLogger(cmd)),
			)
			if err != nil {
				return err
			}

			res, err := auth.Verify(cmd.Context(), "cli", params, code)
			if err != nil {
				return err
			}
			if !res.Accepted {
				fmt.Fprintln(cmd.OutOrStdout(), "rejected")
				return errRejected
			}
			fmt.Fprintf(cmd.OutOrStdout(), "accepted\tcounter=%d\tdelta=%d\n", res.Counter, res.Delta)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "base32 secret")
	cmd.Flags().StringVar(&uri, "uri", "", "otpauth:// provisioning URI")
	cmd.Flags().StringVar(&code, "code", "", "code to check")
	cmd.Flags().StringVar(&at, "at", "", "time as unix seconds or RFC 3339 (default now)")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
