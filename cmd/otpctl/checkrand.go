package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/otpkit/pkg/totp"
)

func newCheckRandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-rand",
		Short: "Check that the platform CSPRNG is usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := totp.CheckRandomSource(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
