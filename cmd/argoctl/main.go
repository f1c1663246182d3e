package main

import (
	"context"
	"os"
	"time"

	"github.com/argoview/backend-go/internal/argo"
	"github.com/argoview/backend-go/internal/config"
	"github.com/argoview/backend-go/internal/models"
	"github.com/argoview/backend-go/internal/state"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// filterFlags are shared by the commands that query the sources
type filterFlags struct {
	dataset    string
	region     string
	startDate  string
	endDate    string
	parameters []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dataset, "dataset", string(models.DatasetArgoCore), "dataset to query (argo-core, bgc-floats)")
	cmd.Flags().StringVar(&f.region, "region", string(models.RegionGlobal), "region to query (global, indian-ocean, arabian-sea, bay-of-bengal)")
	cmd.Flags().StringVar(&f.startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.parameters, "param", []string{models.ParameterTemperature}, "parameters to include")
}

// apply copies the flags into the store's filter selection
func (f *filterFlags) apply(store *state.Store) error {
	dataset, err := models.ParseDataset(f.dataset)
	if err != nil {
		return err
	}
	region, err := models.ParseRegion(f.region)
	if err != nil {
		return err
	}

	store.SetDataset(dataset)
	store.SetRegion(region)
	store.SetStartDate(f.startDate)
	store.SetEndDate(f.endDate)
	store.SetParameters(f.parameters)
	return nil
}

var timeout time.Duration

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "argoctl",
		Short: "Query ARGO float data and export it from the command line",
		Long: `argoctl runs the same aggregation and export pipeline as the API.

Sources and logging are configured through the environment (or a .env file):
SOURCE_MODE, ARGO_GLOBAL_URL, ARGO_REGIONAL_URL, LOG_LEVEL, ENV.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadFromEnv().InitializeLogging()
		},
	}

	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout for the command")

	rootCmd.AddCommand(newQueryCmd(), newExportCmd(), newPresetsCmd())
	return rootCmd
}

// newStore wires a state store to the configured sources
func newStore() (*state.Store, *config.Config, error) {
	cfg := config.LoadFromEnv()
	aggregator, err := argo.NewAggregatorFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return state.NewStore(aggregator), cfg, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
