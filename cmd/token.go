package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/pagetest.net/internal/adapter/crypto"
)

func newTokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens := crypto.NewTokenService(sysCfg.JwtConfig)
			tok, err := tokens.GenerateTokenHMAC(context.Background(), sysCfg.JwtConfig.Method, subject, sysCfg.JwtConfig.TokenTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "operator", "subject claim of the token")
	return cmd
}
