package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finpulse/finpulse-cli/internal/seed"
)

var (
	seedCount   int
	seedWorkers int
	seedSource  int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate synthetic peer results for percentile ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		count := seedCount
		if count == 0 {
			count = cfg.Seed.Count
		}
		workers := seedWorkers
		if workers == 0 {
			workers = cfg.Seed.Workers
		}

		n, err := seed.Run(ctx, st, newEngine(), seed.Options{
			Count:   count,
			Workers: workers,
			Seed:    seedSource,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d peer results.\n", n)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 0, "number of peers to generate (default from config)")
	seedCmd.Flags().IntVar(&seedWorkers, "workers", 0, "concurrent writers (default from config)")
	seedCmd.Flags().Int64Var(&seedSource, "seed", 0, "random seed for reproducible runs")
	rootCmd.AddCommand(seedCmd)
}
