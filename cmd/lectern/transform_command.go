package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lectern/internal/cocina"
	"lectern/internal/mods"
	"lectern/internal/purl"
)

func newTransformCommand(ctx *commandContext) *cobra.Command {
	var purlURL string
	var druid string

	cmd := &cobra.Command{
		Use:   "transform <description.json>",
		Short: "Render a Cocina description file as MODS XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read description: %w", err)
			}

			var desc cocina.Description
			if err := json.Unmarshal(data, &desc); err != nil {
				return fmt.Errorf("parse description: %w", err)
			}
			if err := desc.Validate(); err != nil {
				return err
			}

			target := strings.TrimSpace(purlURL)
			if target == "" && strings.TrimSpace(druid) != "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = purl.URLFor(cfg.Purl.BaseURL, druid)
			}

			fmt.Fprintln(cmd.OutOrStdout(), mods.TransformString(&desc, target))
			return nil
		},
	}

	cmd.Flags().StringVar(&purlURL, "purl", "", "Persistent URL to embed in the location element")
	cmd.Flags().StringVar(&druid, "druid", "", "Derive the persistent URL from this druid and the configured base URL")
	return cmd
}

func newModsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mods <druid>",
		Short: "Render an object's head version as MODS XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				document, err := repo.Mods(cmdCtx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(document, "\n"))
				return nil
			})
		},
	}
}

func newMarc856Command(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "marc856 <druid>",
		Short: "Export an object's catalog link field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				field, released, err := repo.Marc856(cmdCtx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"field856": field,
						"released": released,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, field)
				fmt.Fprintf(out, "Released to Searchworks: %s\n", yesNo(released))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}
