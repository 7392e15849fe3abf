package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lectern/internal/client"
)

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var sourceID string
	var objectType string
	var label string
	var cocinaVersion string
	var descriptionPath string
	var structuralPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "register <druid>",
		Short: "Register a new repository object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(label) == "" {
				return fmt.Errorf("--label is required")
			}

			description, err := readOptionalFile(descriptionPath)
			if err != nil {
				return err
			}
			structural, err := readOptionalFile(structuralPath)
			if err != nil {
				return err
			}

			return ctx.withRepository(cmd, func(cmdCtx context.Context, repo repository) error {
				obj, token, err := repo.Register(cmdCtx, client.Registration{
					Druid:         args[0],
					SourceID:      sourceID,
					ObjectType:    objectType,
					Label:         label,
					CocinaVersion: cocinaVersion,
					Description:   description,
					Structural:    structural,
				})
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, obj)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Registered %s (version %d)\n", obj.Druid, obj.HeadVersion)
				fmt.Fprintf(out, "Lock token: %s\n", token)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sourceID, "source-id", "", "External source identifier")
	cmd.Flags().StringVar(&objectType, "type", "", "Object type (defaults to \"object\")")
	cmd.Flags().StringVar(&label, "label", "", "Object label")
	cmd.Flags().StringVar(&cocinaVersion, "cocina-version", "", "Cocina model version of the supplied documents")
	cmd.Flags().StringVar(&descriptionPath, "description", "", "Path to a Cocina description JSON file")
	cmd.Flags().StringVar(&structuralPath, "structural", "", "Path to a Cocina structural JSON file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func readOptionalFile(path string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", trimmed, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s is not valid JSON", trimmed)
	}
	return json.RawMessage(data), nil
}
