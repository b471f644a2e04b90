package percentile

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse/finpulse-cli/internal/model"
	"github.com/finpulse/finpulse-cli/internal/questionnaire"
)

func TestAgeBucket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{18, "18"},
		{24, "24"},
		{25, "25-30"},
		{30, "25-30"},
		{31, "31-40"},
		{40, "31-40"},
		{41, "41-50"},
		{50, "41-50"},
		{51, "51+"},
		{90, "51+"},
	}
	for _, tt := range tests {
		got, err := AgeBucket(tt.age)
		require.NoError(t, err, "age %d", tt.age)
		assert.Equal(t, tt.want, got, "age %d", tt.age)
	}
}

func TestAgeBucketUnderage(t *testing.T) {
	for _, age := range []int{17, 0, -5} {
		_, err := AgeBucket(age)
		assert.Error(t, err, "age %d", age)
	}
}

func peersWithScores(scores ...int) []model.PeerRecord {
	peers := make([]model.PeerRecord, 0, len(scores))
	for _, s := range scores {
		peers = append(peers, model.PeerRecord{
			TotalScore: s,
			Breakdowns: []model.ScoreBreakdown{
				{Section: questionnaire.SectionIncome, Score: s / 5, MaxScore: 20},
			},
		})
	}
	return peers
}

func uniformPeers(n, score int) []model.PeerRecord {
	return peersWithScores(repeat(score, n)...)
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestComputeSmallGroupReturnsSizeOnly(t *testing.T) {
	res := Compute("25-30", model.TotalScoreResult{TotalScore: 50}, uniformPeers(99, 40))

	assert.Equal(t, 99, res.GroupSize)
	assert.Nil(t, res.TotalPercentile)
	assert.Empty(t, res.CategoryPercentiles)
}

func TestComputeStrictlyBelowRank(t *testing.T) {
	// 100 peers: 60 below the user's score, 40 at or above it.
	peers := append(uniformPeers(60, 30), uniformPeers(40, 70)...)
	res := Compute("31-40", model.TotalScoreResult{TotalScore: 50}, peers)

	require.NotNil(t, res.TotalPercentile)
	assert.Equal(t, 60, *res.TotalPercentile)
	assert.Equal(t, 100, res.GroupSize)
}

func TestComputeTiedWithEveryone(t *testing.T) {
	res := Compute("51+", model.TotalScoreResult{TotalScore: 40}, uniformPeers(100, 40))

	require.NotNil(t, res.TotalPercentile)
	assert.Equal(t, 0, *res.TotalPercentile)
}

func TestComputeBeatsEveryone(t *testing.T) {
	res := Compute("41-50", model.TotalScoreResult{TotalScore: 95}, uniformPeers(100, 40))

	require.NotNil(t, res.TotalPercentile)
	assert.Equal(t, 100, *res.TotalPercentile)
}

func TestComputeCategoryDenominatorSkipsMissing(t *testing.T) {
	peers := uniformPeers(100, 40)
	// Half the peers predate the income category and carry no score for it.
	for i := 0; i < 50; i++ {
		peers[i].Breakdowns = nil
	}

	result := model.TotalScoreResult{
		TotalScore: 50,
		Breakdowns: []model.ScoreBreakdown{
			{Section: questionnaire.SectionIncome, Score: 20, MaxScore: 20},
		},
	}
	res := Compute("25-30", result, peers)

	require.Contains(t, res.CategoryPercentiles, questionnaire.SectionIncome)
	// All 50 counted peers score 8 on income, strictly below 20.
	assert.Equal(t, 100, res.CategoryPercentiles[questionnaire.SectionIncome])
}

func TestComputeIndividualYoungBuckets(t *testing.T) {
	for age := 18; age <= 24; age++ {
		bucket, err := AgeBucket(age)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(age), bucket)
	}
}

func TestEstimateBenchmarkAtAverage(t *testing.T) {
	answers := model.AnswerMap{
		questionnaire.QMonthlyIncome:   float64(5500),
		questionnaire.QMonthlySpending: float64(4300),
		questionnaire.QCheckingBalance: float64(15000),
		questionnaire.QInvestBalance:   float64(25000),
		questionnaire.QRothBalance:     float64(50000),
		questionnaire.QCreditTier:      questionnaire.TierGood,
	}
	r := EstimateBenchmark(30, answers)

	// The "more is better" scale tops out: matching the average already
	// puts the raw value at the cap.
	assert.Equal(t, 99, r.Income)
	assert.Equal(t, 50, r.Spending)
	assert.Equal(t, 70, r.Credit)
	assert.Equal(t, 99, r.Savings)
}

func TestEstimateBenchmarkClamps(t *testing.T) {
	rich := model.AnswerMap{questionnaire.QMonthlyIncome: float64(1e9)}
	assert.Equal(t, 99, EstimateBenchmark(40, rich).Income)

	indebted := model.AnswerMap{questionnaire.QCardDebtBal: float64(1e9)}
	assert.Equal(t, 1, EstimateBenchmark(40, indebted).Debt)
}

func TestEstimateBenchmarkUnknownCredit(t *testing.T) {
	r := EstimateBenchmark(22, model.AnswerMap{})
	assert.Equal(t, 10, r.Credit)
}

func TestDescription(t *testing.T) {
	tests := []struct {
		percentile int
		want       string
	}{
		{100, "Top 5%"},
		{95, "Top 5%"},
		{94, "Top 10%"},
		{90, "Top 10%"},
		{82, "Top 25%"},
		{75, "Top 25%"},
		{60, "Above Average"},
		{50, "Above Average"},
		{30, "Below Average"},
		{25, "Below Average"},
		{24, "Bottom 25%"},
		{0, "Bottom 25%"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Description(tc.percentile))
	}
}
