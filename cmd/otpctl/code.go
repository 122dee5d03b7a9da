package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/otpkit/pkg/totp"
)

func newCodeCmd(pf *policyFlags) *cobra.Command {
	var secret, uri, at string

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Print the TOTP code for a secret",
		Example: `otpctl code --secret JBSWY3DPEHPK3PXP
otpctl code --uri 'otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP' --at 2024-01-01T00:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, _, err := paramsFromFlags(pf, secret, uri)
			if err != nil {
				return err
			}
			when, err := parseAt(at)
			if err != nil {
				return err
			}

			code, err := totp.GenerateTOTP(params, when)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%ds\n", code, int(totp.Remaining(when, params.WithDefaults().Period).Seconds()))
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "base32 secret")
	cmd.Flags().StringVar(&uri, "uri", "", "otpauth:// provisioning URI")
	cmd.Flags().StringVar(&at, "at", "", "time as unix seconds or RFC 3339 (default now)")
	return cmd
}
