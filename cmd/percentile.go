package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/finpulse/finpulse-cli/internal/percentile"
	"github.com/finpulse/finpulse-cli/internal/questionnaire"
)

var percentileCmd = &cobra.Command{
	Use:   "percentile",
	Short: "Rank a saved answer file against stored peers",
	Long:  "Scores the answers, then ranks the result against saved peers in the same age bucket. Falls back to national benchmark estimates when the peer group is too small.",
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := readAnswers(scoreInput)
		if err != nil {
			return err
		}
		age, err := questionnaire.ValidateAge(answers.Number(questionnaire.QAge))
		if err != nil {
			return err
		}
		bucket, err := percentile.AgeBucket(age)
		if err != nil {
			return err
		}

		result := newEngine().ComputeScore(answers)

		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		peers, err := st.FindPeerSample(ctx, bucket)
		if err != nil {
			return err
		}
		ranked := percentile.Compute(bucket, result, peers)

		out := cmd.OutOrStdout()
		if scoreAsJSON {
			payload := map[string]any{"percentiles": ranked}
			if ranked.TotalPercentile == nil {
				payload["benchmark"] = percentile.EstimateBenchmark(age, answers)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		}

		if ranked.TotalPercentile != nil {
			fmt.Fprintf(out, "You scored higher than %d%% of peers aged %s (%d sampled): %s.\n",
				*ranked.TotalPercentile, bucket, ranked.GroupSize,
				percentile.Description(*ranked.TotalPercentile))
			sections := make([]string, 0, len(ranked.CategoryPercentiles))
			for section := range ranked.CategoryPercentiles {
				sections = append(sections, section)
			}
			sort.Strings(sections)
			for _, section := range sections {
				fmt.Fprintf(out, "  %-32s %3d%%\n", section, ranked.CategoryPercentiles[section])
			}
			return nil
		}

		fmt.Fprintf(out, "Not enough peers aged %s yet (%d of %d needed). Estimated standing from national averages:\n",
			bucket, ranked.GroupSize, percentile.MinGroupSize)
		est := percentile.EstimateBenchmark(age, answers)
		fmt.Fprintf(out, "  %-12s %3d%%  (%s)\n", "overall", est.Overall, percentile.Description(est.Overall))
		fmt.Fprintf(out, "  %-12s %3d%%\n", "income", est.Income)
		fmt.Fprintf(out, "  %-12s %3d%%\n", "spending", est.Spending)
		fmt.Fprintf(out, "  %-12s %3d%%\n", "savings", est.Savings)
		fmt.Fprintf(out, "  %-12s %3d%%\n", "debt", est.Debt)
		fmt.Fprintf(out, "  %-12s %3d%%\n", "credit", est.Credit)
		fmt.Fprintf(out, "  %-12s %3d%%\n", "investment", est.Investment)
		fmt.Fprintf(out, "  %-12s %3d%%\n", "retirement", est.Retirement)
		return nil
	},
}

func init() {
	percentileCmd.Flags().StringVarP(&scoreInput, "input", "i", "-", "answers JSON file (- for stdin)")
	percentileCmd.Flags().BoolVar(&scoreAsJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(percentileCmd)
}
