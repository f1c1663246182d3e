package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/argoview/backend-go/internal/config"
	"github.com/argoview/backend-go/internal/models"
	"github.com/argoview/backend-go/internal/presets"
	"github.com/spf13/cobra"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Save and recall filter presets",
		Long: `Saves and recalls filter presets in the PRESET_TABLE DynamoDB table.

With PRESET_ENABLE_DYNAMO=false presets are kept in memory and only live as long
as one argoctl invocation, so "get" will not find a preset saved by an earlier
"save" or "import". Use that mode only to validate presets.`,
	}
	cmd.AddCommand(newPresetsSaveCmd(), newPresetsGetCmd(), newPresetsImportCmd())
	return cmd
}

func newPresetsSaveCmd() *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the given filters under a name and print the preset id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			service, err := presets.NewServiceFromConfig(ctx, config.GetPresetConfig())
			if err != nil {
				return err
			}

			preset := presets.NewPreset(args[0], models.QueryParams{
				Region:     models.Region(filters.region),
				StartDate:  filters.startDate,
				EndDate:    filters.endDate,
				Parameters: filters.parameters,
				Dataset:    models.Dataset(filters.dataset),
			}, time.Now())

			if err := service.Save(ctx, preset); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), preset.ID)
			return nil
		},
	}

	filters.register(cmd)
	return cmd
}

func newPresetsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.json]",
		Short: "Save every preset in a JSON array file and print their ids",
		Long: `Reads a JSON array of {"name": ..., "filters": {...}} objects and saves
them as one batch. Nothing is saved when any entry is invalid.

Example:
  argoctl presets import presets.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading presets file: %w", err)
			}

			var drafts []presets.Draft
			if err := json.Unmarshal(data, &drafts); err != nil {
				return fmt.Errorf("decoding presets file: %w", err)
			}

			now := time.Now()
			batch := make([]presets.Preset, 0, len(drafts))
			for i, draft := range drafts {
				preset := draft.Preset(now)
				if err := preset.Validate(); err != nil {
					return fmt.Errorf("preset %d: %w", i, err)
				}
				batch = append(batch, preset)
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			service, err := presets.NewServiceFromConfig(ctx, config.GetPresetConfig())
			if err != nil {
				return err
			}
			if err := service.SaveBatch(ctx, batch); err != nil {
				return err
			}

			for _, preset := range batch {
				fmt.Fprintln(cmd.OutOrStdout(), preset.ID)
			}
			return nil
		},
	}
}

func newPresetsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Print a saved preset as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			service, err := presets.NewServiceFromConfig(ctx, config.GetPresetConfig())
			if err != nil {
				return err
			}

			preset, err := service.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if preset == nil {
				return fmt.Errorf("preset %s not found", args[0])
			}

			out, err := json.MarshalIndent(preset, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding preset: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
