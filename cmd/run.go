package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run <artifactPath>",
		Short: "Run a stored test script and print its outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			ctx := context.Background()
			app, err := buildApplication(ctx, sysCfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			run, err := app.service.Run(ctx, args[0])
			if err != nil {
				return err
			}

			if err := renderRun(cmd.OutOrStdout(), run, format); err != nil {
				return err
			}
			if !run.Outcome.Success {
				return errTestsFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json or yaml")
	return cmd
}
