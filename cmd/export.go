package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finpulse/finpulse-cli/internal/export"
	"github.com/finpulse/finpulse-cli/internal/store"
)

var (
	exportOutput string
	exportUser   string
	exportBucket string
	exportLimit  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved results to an xlsx workbook or csv file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		results, err := st.ListResults(ctx, store.ResultFilter{
			UserID:    exportUser,
			AgeBucket: exportBucket,
			Limit:     exportLimit,
		})
		if err != nil {
			return err
		}

		write := export.WriteXLSX
		if strings.HasSuffix(exportOutput, ".csv") {
			write = export.WriteCSV
		}
		if err := write(exportOutput, results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d results to %s\n", len(results), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "results.xlsx", "output file path (.xlsx or .csv)")
	exportCmd.Flags().StringVar(&exportUser, "user", "", "only results for this user id")
	exportCmd.Flags().StringVar(&exportBucket, "bucket", "", "only results in this age bucket")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 1000, "maximum results to export")
	rootCmd.AddCommand(exportCmd)
}
