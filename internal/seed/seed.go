// Package seed generates synthetic peer results so percentile rankings
// have data to rank against before real submissions accumulate.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finpulse/finpulse-cli/internal/model"
	"github.com/finpulse/finpulse-cli/internal/percentile"
	"github.com/finpulse/finpulse-cli/internal/questionnaire"
	"github.com/finpulse/finpulse-cli/internal/scorer"
	"github.com/finpulse/finpulse-cli/internal/store"
)

// Options configures a seeding run.
type Options struct {
	Count   int
	Workers int
	// Seed fixes the random source for reproducible runs. Zero means a
	// different sample every run.
	Seed int64
}

// Run inserts Count synthetic results. Profiles are random but weighted
// toward plausible combinations; each is scored with the real engine so
// seeded peers are indistinguishable from organic ones at ranking time.
// Backends that support bulk loading get the whole batch in one COPY.
func Run(ctx context.Context, st store.Store, engine *scorer.Engine, opts Options) (int, error) {
	count := opts.Count
	if count <= 0 {
		count = 500
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	results := make([]model.SavedResult, count)
	g, genCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			if err := genCtx.Err(); err != nil {
				return err
			}
			src := opts.Seed
			if src == 0 {
				src = int64(uuid.New().ID())
			}
			rng := rand.New(rand.NewSource(src + int64(i)))

			age := questionnaire.MinAge + rng.Intn(50)
			bucket, err := percentile.AgeBucket(age)
			if err != nil {
				return err
			}

			answers := randomProfile(rng, age)
			results[i] = model.SavedResult{
				UserID:    "seed",
				Key:       fmt.Sprintf("seed-%s", uuid.New().String()),
				Age:       age,
				AgeBucket: bucket,
				Answers:   answers,
				Result:    engine.ComputeScore(answers),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if bulk, ok := st.(store.BulkWriter); ok {
		n, err := bulk.BulkInsertResults(ctx, results)
		if err != nil {
			return int(n), eris.Wrap(err, "seed: bulk insert")
		}
		zap.L().Info("seeded peer results", zap.Int64("count", n), zap.Bool("bulk", true))
		return int(n), nil
	}

	inserted := 0
	for i := range results {
		if _, err := st.SaveResult(ctx, &results[i]); err != nil {
			return inserted, eris.Wrapf(err, "seed: insert peer %d", i)
		}
		inserted++
	}
	zap.L().Info("seeded peer results", zap.Int("count", inserted))
	return inserted, nil
}

func randomProfile(rng *rand.Rand, age int) model.AnswerMap {
	answers := model.AnswerMap{
		questionnaire.QAge: float64(age),
	}

	income := float64(rng.Intn(9000)) + 1000
	if rng.Float64() < 0.85 {
		answers[questionnaire.QHasIncome] = questionnaire.AnswerYes
		answers[questionnaire.QMonthlyIncome] = income
		answers[questionnaire.QMonthlySpending] = income * (0.4 + rng.Float64()*0.8)
	} else {
		answers[questionnaire.QHasIncome] = questionnaire.AnswerNo
	}

	if rng.Float64() < 0.9 {
		answers[questionnaire.QHasChecking] = questionnaire.AnswerYes
		answers[questionnaire.QCheckingBalance] = float64(rng.Intn(20000))
	} else {
		answers[questionnaire.QHasChecking] = questionnaire.AnswerNo
	}
	if rng.Float64() < 0.4 {
		answers[questionnaire.QHasHYSA] = questionnaire.AnswerYes
	} else {
		answers[questionnaire.QHasHYSA] = questionnaire.AnswerNo
	}

	if rng.Float64() < 0.35 {
		answers[questionnaire.QHasStudentLoan] = questionnaire.AnswerYes
		answers[questionnaire.QStudentLoanBal] = float64(rng.Intn(60000))
	} else {
		answers[questionnaire.QHasStudentLoan] = questionnaire.AnswerNo
	}
	if rng.Float64() < 0.3 {
		answers[questionnaire.QHasCardDebt] = questionnaire.AnswerYes
		answers[questionnaire.QCardDebtBal] = float64(rng.Intn(15000))
	} else {
		answers[questionnaire.QHasCardDebt] = questionnaire.AnswerNo
	}
	answers[questionnaire.QHasCarLoan] = questionnaire.AnswerNo

	tiers := []string{
		questionnaire.TierExcellent, questionnaire.TierVeryGood,
		questionnaire.TierGood, questionnaire.TierFair,
		questionnaire.TierPoor, questionnaire.AnswerUnknown,
	}
	answers[questionnaire.QCreditTier] = tiers[rng.Intn(len(tiers))]
	counts := []string{
		questionnaire.CardsNone, questionnaire.CardsOne, questionnaire.CardsTwo,
		questionnaire.CardsThree, questionnaire.CardsFourPlus,
	}
	answers[questionnaire.QCardCount] = counts[rng.Intn(len(counts))]

	if rng.Float64() < 0.5 {
		answers[questionnaire.QHasBrokerage] = questionnaire.AnswerYes
		answers[questionnaire.QInvestBalance] = float64(rng.Intn(80000))
		types := []string{"stocks", "index_funds", "bonds"}
		answers[questionnaire.QInvestTypes] = types[:1+rng.Intn(len(types))]
	} else {
		answers[questionnaire.QHasBrokerage] = questionnaire.AnswerNo
	}

	if rng.Float64() < 0.4 {
		answers[questionnaire.QHasRothIRA] = questionnaire.AnswerYes
		answers[questionnaire.QRothBalance] = float64(rng.Intn(40000))
	} else {
		answers[questionnaire.QHasRothIRA] = questionnaire.AnswerNo
	}

	return answers
}
