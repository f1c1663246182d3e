package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/argoview/backend-go/internal/api"
	"github.com/argoview/backend-go/internal/models"
	"github.com/argoview/backend-go/internal/state"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errIncompleteFilters = errors.New("dataset, region and at least one parameter are required")

func newQueryCmd() *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Fetch floats and profiles from every source",
		Long: `Queries the global and regional sources concurrently and prints the
merged result as JSON. Failed sources are listed under "errors".

Example:
  argoctl query --region arabian-sea --param temperature,salinity`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := newStore()
			if err != nil {
				return err
			}
			if err := filters.apply(store); err != nil {
				return err
			}

			unsubscribe := store.Subscribe(func(s state.Snapshot) {
				log.Debug().Bool("loading", s.IsLoading).Int("floats", len(s.Floats)).Msg("State changed")
			})
			defer unsubscribe()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			fetched, err := store.FetchData(ctx)
			if err != nil {
				return err
			}
			if !fetched {
				return errIncompleteFilters
			}

			snap := store.Snapshot()
			resp := api.NewArgoDataResponse(&models.CombinedResult{
				Floats:   snap.Floats,
				Profiles: snap.Profiles,
				Errors:   snap.Errors,
			})

			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	filters.register(cmd)
	return cmd
}
