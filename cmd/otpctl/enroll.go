package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/otpkit/pkg/authenticator"
	"github.com/dmitrymomot/otpkit/pkg/enrollment"
	"github.com/dmitrymomot/otpkit/pkg/totp"
)

func newEnrollCmd(pf *policyFlags) *cobra.Command {
	var account, accountID, qrPath string
	var qrSize int

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Issue a secret and print its provisioning URI",
		Long: `Issue a new secret for an account and print the manual-entry key and
provisioning URI. When TOTP_ENCRYPTION_KEY is set the sealed secret is
printed too, ready to be stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := resolvePolicy(pf, "")
			if err != nil {
				return err
			}
			log := newLogger(cmd)

			auth, err := authenticator.New(policy, authenticator.WithLogger(log))
			if err != nil {
				return err
			}

			opts := []enrollment.Option{enrollment.WithLogger(log)}
			key, keyErr := policy.EncryptionKeyBytes()
			switch {
			case keyErr == nil:
				opts = append(opts, enrollment.WithSealingKey(key))
			case !errors.Is(keyErr, totp.ErrEncryptionKeyNotSet):
				return keyErr
			}

			svc, err := enrollment.NewService(auth, opts...)
			if err != nil {
				return err
			}

			if accountID == "" {
				accountID = account
			}
			e, err := svc.Begin(cmd.Context(), accountID, account)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "enrollment: %s\n", e.ID)
			fmt.Fprintf(out, "secret:     %s\n", e.ManualEntryKey())
			fmt.Fprintf(out, "uri:        %s\n", e.URI)

			if keyErr == nil {
				sealed, err := svc.Seal(e)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "sealed:     %s\n", sealed)
			}

			if qrPath != "" {
				png, err := e.QRCode(qrSize)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrPath, png, 0o600); err != nil {
					return err
				}
				fmt.Fprintf(out, "qr:         %s\n", qrPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account name shown in the app, e.g. an email")
	cmd.Flags().StringVar(&accountID, "account-id", "", "account id used for sealing (default --account)")
	cmd.Flags().StringVar(&qrPath, "qr", "", "write the QR code PNG to this file")
	cmd.Flags().IntVar(&qrSize, "qr-size", enrollment.DefaultQRSize, "QR code size in pixels")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
