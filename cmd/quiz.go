package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finpulse/finpulse-cli/internal/model"
	"github.com/finpulse/finpulse-cli/internal/percentile"
	"github.com/finpulse/finpulse-cli/internal/questionnaire"
	"github.com/finpulse/finpulse-cli/internal/recommend"
)

var quizSave bool

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run the interactive financial health questionnaire",
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := runQuiz(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		result := newEngine().ComputeScore(answers)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		if err := renderScoreTable(out, result); err != nil {
			return err
		}
		renderDetails(out, result)

		fmt.Fprintf(out, "\n%s\n", color.New(color.Bold).Sprint("Recommendations"))
		renderRecommendations(out, recommend.Generate(answers))

		if !quizSave {
			return nil
		}

		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		age, err := questionnaire.ValidateAge(answers.Number(questionnaire.QAge))
		if err != nil {
			return err
		}
		bucket, err := percentile.AgeBucket(age)
		if err != nil {
			return err
		}

		saved, err := st.SaveResult(ctx, &model.SavedResult{
			Key:       answers.Hash(),
			Age:       age,
			AgeBucket: bucket,
			Answers:   answers,
			Result:    result,
		})
		if err != nil {
			return err
		}
		zap.L().Info("result saved", zap.String("id", saved.ID))

		peers, err := st.FindPeerSample(ctx, bucket)
		if err != nil {
			return err
		}
		ranked := percentile.Compute(bucket, result, peers)
		if ranked.TotalPercentile != nil {
			fmt.Fprintf(out, "\nYou scored higher than %d%% of peers in your age group (%d sampled): %s.\n",
				*ranked.TotalPercentile, ranked.GroupSize,
				percentile.Description(*ranked.TotalPercentile))
		} else {
			fmt.Fprintf(out, "\nNot enough peers in your age group yet (%d of %d needed).\n",
				ranked.GroupSize, percentile.MinGroupSize)
		}
		return nil
	},
}

// errBack signals that the respondent asked to revisit the previous
// question instead of answering the current one.
var errBack = eris.New("back requested")

func isBack(line string) bool {
	switch strings.ToLower(line) {
	case "b", "back":
		return true
	}
	return false
}

func runQuiz(in io.Reader, out io.Writer) (model.AnswerMap, error) {
	scanner := bufio.NewScanner(in)
	session := questionnaire.NewSession(questionnaire.Questions)

	fmt.Fprintln(out, `Answer each question. Enter "b" to go back.`)
	for !session.Done() {
		q := session.Current()
		if q == nil {
			break
		}

		fmt.Fprintf(out, "\n%s\n", color.New(color.Bold).Sprintf("[%s] %s", q.Section, q.Text))
		if prev, ok := session.Answers[q.ID]; ok {
			fmt.Fprintf(out, "Current answer: %s\n", formatExisting(q, prev))
		}

		value, err := promptAnswer(scanner, out, q)
		if err == errBack {
			if !session.Back() {
				fmt.Fprintln(out, "Already at the first question.")
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		session.Answer(value)
	}

	return session.Answers, nil
}

// formatExisting renders a kept answer for re-display after going back,
// using the option label rather than the stored value where one exists.
func formatExisting(q *model.Question, v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		return strings.Join(val, ", ")
	case string:
		for _, opt := range q.Options {
			if opt.Value == val {
				return opt.Label
			}
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}

func promptAnswer(scanner *bufio.Scanner, out io.Writer, q *model.Question) (any, error) {
	switch q.Kind {
	case model.InputSingleSelect:
		return promptSingleSelect(scanner, out, q)
	case model.InputMultiSelect:
		return promptMultiSelect(scanner, out, q)
	case model.InputAmount:
		return promptAmount(scanner, out, q)
	default:
		return promptText(scanner, out, q)
	}
}

func promptSingleSelect(scanner *bufio.Scanner, out io.Writer, q *model.Question) (any, error) {
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Label)
	}
	for {
		fmt.Fprint(out, "> ")
		line, err := readLine(scanner)
		if err != nil {
			return nil, err
		}
		if isBack(line) {
			return nil, errBack
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(q.Options) {
			return q.Options[n-1].Value, nil
		}
		fmt.Fprintf(out, "Enter a number between 1 and %d.\n", len(q.Options))
	}
}

func promptMultiSelect(scanner *bufio.Scanner, out io.Writer, q *model.Question) (any, error) {
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Label)
	}
	fmt.Fprintln(out, "Select all that apply, comma-separated (e.g. 1,3).")
	for {
		fmt.Fprint(out, "> ")
		line, err := readLine(scanner)
		if err != nil {
			return nil, err
		}
		if isBack(line) {
			return nil, errBack
		}

		var picked []string
		valid := true
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 || n > len(q.Options) {
				valid = false
				break
			}
			picked = append(picked, q.Options[n-1].Value)
		}
		if !valid || len(picked) == 0 {
			fmt.Fprintln(out, "Enter one or more option numbers, comma-separated.")
			continue
		}

		// "Other" needs a free-text follow-up before it is committed.
		for i, v := range picked {
			if v == questionnaire.OtherSentinel {
				fmt.Fprint(out, "Please specify: ")
				text, err := readLine(scanner)
				if err != nil {
					return nil, err
				}
				picked[i] = questionnaire.FinalizeOther(text)
			}
		}
		return picked, nil
	}
}

func promptAmount(scanner *bufio.Scanner, out io.Writer, q *model.Question) (any, error) {
	for {
		fmt.Fprintf(out, "%s> ", q.Prefix)
		line, err := readLine(scanner)
		if err != nil {
			return nil, err
		}
		if isBack(line) {
			return nil, errBack
		}
		line = strings.ReplaceAll(line, ",", "")
		v, err := strconv.ParseFloat(line, 64)
		if err == nil && v >= q.Min && v <= q.Max {
			return v, nil
		}
		fmt.Fprintf(out, "Enter an amount between %.0f and %.0f.\n", q.Min, q.Max)
	}
}

func promptText(scanner *bufio.Scanner, out io.Writer, q *model.Question) (any, error) {
	for {
		fmt.Fprint(out, "> ")
		line, err := readLine(scanner)
		if err != nil {
			return nil, err
		}
		if isBack(line) {
			return nil, errBack
		}

		if q.ID == questionnaire.QAge {
			v, perr := strconv.ParseFloat(strings.TrimSpace(line), 64)
			if perr != nil {
				fmt.Fprintln(out, "Enter your age as a number.")
				continue
			}
			age, aerr := questionnaire.ValidateAge(v)
			if aerr != nil {
				fmt.Fprintf(out, "Age must be a whole number between %d and %d.\n",
					questionnaire.MinAge, questionnaire.MaxAge)
				continue
			}
			return float64(age), nil
		}

		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(out, "Please enter a value.")
			continue
		}
		return strings.TrimSpace(line), nil
	}
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", eris.Wrap(err, "read input")
		}
		return "", eris.New("input closed")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func init() {
	quizCmd.Flags().BoolVar(&quizSave, "save", false, "persist the result and rank against peers")
	rootCmd.AddCommand(quizCmd)
}
