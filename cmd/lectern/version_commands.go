package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newVersionsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "versions <druid>",
		Short: "List an object's versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				versions, err := repo.Versions(cmdCtx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, versions)
				}

				rows := make([][]string, 0, len(versions))
				for _, v := range versions {
					state := "closed"
					closed := ""
					if v.Open {
						state = "open"
					} else if v.ClosedAt != nil {
						closed = v.ClosedAt.UTC().Format(time.RFC3339)
					}
					rows = append(rows, []string{
						strconv.Itoa(v.Version),
						state,
						v.CreatedAt.UTC().Format(time.RFC3339),
						closed,
						v.Description,
					})
				}
				table := renderTable(
					[]string{"Version", "State", "Created", "Closed", "Description"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status <druid>",
		Short: "Show an object's versioning status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				status, err := repo.VersionStatus(cmdCtx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, status)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, renderSectionHeader(status.Druid, colorize))
				fmt.Fprintln(out, renderStatusLine("Head version", statusInfo, strconv.Itoa(status.Version), colorize))
				fmt.Fprintln(out, renderStatusLine("Open", boolKind(status.Open), yesNo(status.Open), colorize))
				fmt.Fprintln(out, renderStatusLine("Accessioning", boolKind(status.Accessioning), yesNo(status.Accessioning), colorize))
				openableKind := statusWarn
				if status.Openable {
					openableKind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine("Openable", openableKind, yesNo(status.Openable), colorize))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func boolKind(value bool) statusKind {
	if value {
		return statusWarn
	}
	return statusOK
}

func newOpenCommand(ctx *commandContext) *cobra.Command {
	var description string
	var lockToken string

	cmd := &cobra.Command{
		Use:   "open <druid>",
		Short: "Open a new draft version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				version, token, err := repo.OpenVersion(cmdCtx, args[0], lockToken, description)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Opened version %d\n", version.Version)
				fmt.Fprintf(out, "Lock token: %s\n", token)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Reason for opening the version")
	cmd.Flags().StringVar(&lockToken, "lock-token", "", "Expected lock token (optimistic lock check is skipped when unset)")
	return cmd
}

func newCloseCommand(ctx *commandContext) *cobra.Command {
	var lockToken string

	cmd := &cobra.Command{
		Use:   "close <druid>",
		Short: "Close the open draft version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				status, token, err := repo.CloseVersion(cmdCtx, args[0], lockToken)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Closed version %d\n", status.Version)
				fmt.Fprintf(out, "Lock token: %s\n", token)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&lockToken, "lock-token", "", "Expected lock token (optimistic lock check is skipped when unset)")
	return cmd
}
