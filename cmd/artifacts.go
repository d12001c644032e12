package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newArtifactsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "List generated scripts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			app, err := buildApplication(ctx, sysCfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			artifacts, err := app.service.ListArtifacts(ctx, limit)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			table := tablewriter.NewWriter(&buf)
			table.SetHeader([]string{"Key", "URL", "Created"})
			table.SetBorder(false)
			table.SetCenterSeparator("")
			for _, a := range artifacts {
				table.Append([]string{a.Key, a.URL, a.CreatedAt.Local().Format(time.DateTime)})
			}
			table.SetFooter([]string{fmt.Sprintf("Total %d", len(artifacts)), "", ""})
			table.Render()

			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of entries")
	return cmd
}
