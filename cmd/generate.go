package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var printScript bool

	cmd := &cobra.Command{
		Use:   "generate <url>",
		Short: "Generate (or fetch the cached) test script for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := buildApplication(ctx, sysCfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.service.Generate(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if printScript {
				fmt.Fprintln(out, result.Artifact.Script)
				return nil
			}

			state := color.GreenString("generated")
			if result.Cached {
				state = color.CyanString("cached")
			}
			fmt.Fprintf(out, "%s %s\n", state, result.Artifact.Path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&printScript, "print", "p", false, "print the script instead of its path")
	return cmd
}
