package percentile

import (
	"math"

	"github.com/finpulse/finpulse-cli/internal/model"
	"github.com/finpulse/finpulse-cli/internal/questionnaire"
)

// benchmarkAverages holds rough national medians per age band, used to
// estimate standing when no peer sample exists. These are heuristics,
// not survey data, and the bands are coarser than the peer brackets.
type benchmarkAverages struct {
	MonthlyIncome     float64
	MonthlySpending   float64
	TotalDebt         float64
	TotalSavings      float64
	InvestmentBalance float64
	RetirementSavings float64
}

var ageGroupAverages = map[string]benchmarkAverages{
	"18-25": {3200, 2800, 18000, 5000, 10000, 15000},
	"26-35": {5500, 4300, 50000, 15000, 25000, 50000},
	"36-45": {7500, 5500, 120000, 35000, 50000, 140000},
	"46-55": {8200, 6200, 140000, 55000, 100000, 300000},
}

var creditScorePercentiles = map[string]int{
	questionnaire.TierExcellent: 95,
	questionnaire.TierVeryGood:  85,
	questionnaire.TierGood:      70,
	questionnaire.TierFair:      40,
	questionnaire.TierPoor:      15,
	questionnaire.AnswerUnknown: 10,
}

// BenchmarkResult estimates the user's standing on each financial
// dimension relative to their age band.
type BenchmarkResult struct {
	Income     int `json:"income"`
	Spending   int `json:"spending"`
	Debt       int `json:"debt"`
	Credit     int `json:"credit"`
	Savings    int `json:"savings"`
	Investment int `json:"investment"`
	Retirement int `json:"retirement"`
	Overall    int `json:"overall"`
}

// EstimateBenchmark derives an approximate percentile per dimension by
// comparing the user's raw figures against the age-band averages. Each
// "more is better" dimension scales so that matching the average lands
// at the 50th percentile and doubling it approaches the cap of 99;
// spending and debt invert, so exceeding the average pushes toward 1.
func EstimateBenchmark(age int, answers model.AnswerMap) BenchmarkResult {
	avg := benchmarkBand(age)

	income := answers.Number(questionnaire.QMonthlyIncome)
	spending := answers.Number(questionnaire.QMonthlySpending)
	debt := answers.Number(questionnaire.QStudentLoanBal) +
		answers.Number(questionnaire.QCarLoanBal) +
		answers.Number(questionnaire.QCardDebtBal)
	savings := answers.Number(questionnaire.QCheckingBalance)
	invested := answers.Number(questionnaire.QInvestBalance)
	retirement := answers.Number(questionnaire.QRothBalance) +
		answers.Number(questionnaire.Q401kBalance)

	credit, ok := creditScorePercentiles[answers.String(questionnaire.QCreditTier)]
	if !ok {
		credit = creditScorePercentiles[questionnaire.AnswerUnknown]
	}

	r := BenchmarkResult{
		Income:     scaleUp(income, avg.MonthlyIncome),
		Spending:   scaleDown(spending, avg.MonthlySpending),
		Debt:       scaleDown(debt, avg.TotalDebt),
		Credit:     credit,
		Savings:    scaleUp(savings, avg.TotalSavings),
		Investment: scaleUp(invested, avg.InvestmentBalance),
		Retirement: scaleUp(retirement, avg.RetirementSavings),
	}

	r.Overall = int(math.Round(
		0.15*float64(r.Income) +
			0.15*float64(r.Spending) +
			0.15*float64(r.Debt) +
			0.15*float64(r.Credit) +
			0.10*float64(r.Savings) +
			0.15*float64(r.Investment) +
			0.15*float64(r.Retirement)))
	return r
}

// Description renders a percentile as the label shown next to it.
func Description(percentile int) string {
	switch {
	case percentile >= 95:
		return "Top 5%"
	case percentile >= 90:
		return "Top 10%"
	case percentile >= 75:
		return "Top 25%"
	case percentile >= 50:
		return "Above Average"
	case percentile >= 25:
		return "Below Average"
	default:
		return "Bottom 25%"
	}
}

func benchmarkBand(age int) benchmarkAverages {
	switch {
	case age <= 25:
		return ageGroupAverages["18-25"]
	case age <= 35:
		return ageGroupAverages["26-35"]
	case age <= 45:
		return ageGroupAverages["36-45"]
	default:
		return ageGroupAverages["46-55"]
	}
}

func scaleUp(value, average float64) int {
	return clamp(value/average*50 + 50)
}

func scaleDown(value, average float64) int {
	return clamp(100 - value/average*50)
}

func clamp(v float64) int {
	if v < 1 {
		return 1
	}
	if v > 99 {
		return 99
	}
	return int(math.Round(v))
}
