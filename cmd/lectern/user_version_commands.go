package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lectern/internal/client"
)

func newUserVersionsCommand(ctx *commandContext) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user-versions",
		Short: "Manage public user versions",
	}

	userCmd.AddCommand(newUserVersionListCommand(ctx))
	userCmd.AddCommand(newUserVersionCreateCommand(ctx))
	userCmd.AddCommand(newUserVersionMoveCommand(ctx))
	userCmd.AddCommand(newUserVersionWithdrawCommand(ctx))
	userCmd.AddCommand(newUserVersionRestoreCommand(ctx))

	return userCmd
}

func newUserVersionListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list <druid>",
		Short: "List user versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				list, err := repo.UserVersions(cmdCtx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, list)
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No user versions")
					return nil
				}

				rows := make([][]string, 0, len(list))
				for _, uv := range list {
					rows = append(rows, []string{
						strconv.Itoa(uv.UserVersion),
						strconv.Itoa(uv.Version),
						yesNo(uv.Withdrawn),
					})
				}
				table := renderTable(
					[]string{"User Version", "Version", "Withdrawn"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newUserVersionCreateCommand(ctx *commandContext) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "create <druid>",
		Short: "Point a new user version at a closed repository version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if version < 1 {
				return fmt.Errorf("--version must name a closed repository version")
			}
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				uv, _, err := repo.CreateUserVersion(cmdCtx, args[0], "", version)
				if err != nil {
					return err
				}
				printUserVersion(cmd, uv)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "Repository version the user version points at")
	return cmd
}

func newUserVersionMoveCommand(ctx *commandContext) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "move <druid> <user-version>",
		Short: "Repoint a user version at another closed version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userVersion, err := parseUserVersionArg(args[1])
			if err != nil {
				return err
			}
			if version < 1 {
				return fmt.Errorf("--version must name a closed repository version")
			}
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				uv, _, err := repo.MoveUserVersion(cmdCtx, args[0], "", userVersion, version)
				if err != nil {
					return err
				}
				printUserVersion(cmd, uv)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "Repository version the user version points at")
	return cmd
}

func newUserVersionWithdrawCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <druid> <user-version>",
		Short: "Withdraw a user version from public view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userVersion, err := parseUserVersionArg(args[1])
			if err != nil {
				return err
			}
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				uv, _, err := repo.WithdrawUserVersion(cmdCtx, args[0], "", userVersion)
				if err != nil {
					return err
				}
				printUserVersion(cmd, uv)
				return nil
			})
		},
	}
}

func newUserVersionRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <druid> <user-version>",
		Short: "Reinstate a withdrawn user version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userVersion, err := parseUserVersionArg(args[1])
			if err != nil {
				return err
			}
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				uv, _, err := repo.RestoreUserVersion(cmdCtx, args[0], "", userVersion)
				if err != nil {
					return err
				}
				printUserVersion(cmd, uv)
				return nil
			})
		},
	}
}

func parseUserVersionArg(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid user version %q", value)
	}
	return n, nil
}

func printUserVersion(cmd *cobra.Command, uv *client.UserVersion) {
	fmt.Fprintf(cmd.OutOrStdout(), "User version %d -> version %d (withdrawn: %s)\n",
		uv.UserVersion, uv.Version, yesNo(uv.Withdrawn))
}
