package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <druid>",
		Short: "Show a repository object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				obj, token, err := repo.Object(cmdCtx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, obj)
				}

				rows := [][]string{
					{"Druid", obj.Druid},
					{"Label", obj.Label},
					{"Type", obj.ObjectType},
					{"Source ID", obj.SourceID},
					{"Head version", fmt.Sprintf("%d", obj.HeadVersion)},
					{"Created", obj.CreatedAt.UTC().Format(time.RFC3339)},
					{"Updated", obj.UpdatedAt.UTC().Format(time.RFC3339)},
					{"Lock token", token},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
