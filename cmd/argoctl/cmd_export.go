package main

import (
	"fmt"
	"time"

	"github.com/argoview/backend-go/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		filters filterFlags
		format  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch profiles and save them as csv, netcdf or json",
		Long: `Fetches profiles like "query" and saves the export to EXPORT_BUCKET when
set, otherwise to EXPORT_DIR. Unknown formats are exported as JSON.

Example:
  argoctl export --region bay-of-bengal --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := newStore()
			if err != nil {
				return err
			}
			if err := filters.apply(store); err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if !store.Snapshot().Filters.CanDownloadData() {
				return errIncompleteFilters
			}
			if _, err := store.FetchData(ctx); err != nil {
				return err
			}

			var saver export.Saver = export.NewFileSaver(cfg.ExportDir)
			if cfg.ExportBucket != "" {
				saver, err = export.NewS3SaverFromDefaultConfig(ctx, cfg.ExportBucket)
				if err != nil {
					return err
				}
			}

			payload, location, err := store.Download(ctx, saver, export.Format(format), time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %d bytes) -> %s\n", payload.Filename, payload.ContentType, len(payload.Data), location)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "export format (csv, netcdf, json)")
	return cmd
}
