package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/finpulse/finpulse-cli/internal/model"
	"github.com/finpulse/finpulse-cli/internal/recommend"
)

var (
	scoreInput   string
	scoreAsJSON  bool
	scoreDetails bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a saved answer file",
	Long:  "Reads a JSON answer map from a file (or stdin with -) and prints the category breakdown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := readAnswers(scoreInput)
		if err != nil {
			return err
		}

		result := newEngine().ComputeScore(answers)

		if scoreAsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		if err := renderScoreTable(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		if scoreDetails {
			renderDetails(cmd.OutOrStdout(), result)
		}
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate product recommendations for a saved answer file",
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := readAnswers(scoreInput)
		if err != nil {
			return err
		}

		cats := recommend.Generate(answers)

		if scoreAsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cats)
		}

		renderRecommendations(cmd.OutOrStdout(), cats)
		return nil
	},
}

func readAnswers(path string) (model.AnswerMap, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "read answers %s", path)
	}

	var answers model.AnswerMap
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, eris.Wrap(err, "parse answers")
	}
	return answers, nil
}

func init() {
	for _, c := range []*cobra.Command{scoreCmd, recommendCmd} {
		c.Flags().StringVarP(&scoreInput, "input", "i", "-", "answers JSON file (- for stdin)")
		c.Flags().BoolVar(&scoreAsJSON, "json", false, "emit JSON instead of a table")
	}
	scoreCmd.Flags().BoolVar(&scoreDetails, "details", false, "print per-rule detail lines")
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(recommendCmd)
}
