package scorer

import (
	"fmt"
	"math"

	"github.com/finpulse/finpulse-cli/internal/model"
	"github.com/finpulse/finpulse-cli/internal/money"
	"github.com/finpulse/finpulse-cli/internal/questionnaire"
)

// Engine scores answer maps against one Config. All methods are pure: the
// same answers always produce byte-identical results, and no input is
// mutated, so an Engine is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine. Callers should validate the config first.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// ComputeScore scores answers with the canonical rule set.
func ComputeScore(answers model.AnswerMap) model.TotalScoreResult {
	return NewEngine(DefaultConfig()).ComputeScore(answers)
}

// ComputeScore runs all six category scorers and aggregates them. Every
// scorer runs even when its governing question was never answered: an
// absent answer scores like "no", because the conditional branch is only
// skipped when its prerequisite was answered "no".
func (e *Engine) ComputeScore(answers model.AnswerMap) model.TotalScoreResult {
	breakdowns := []model.ScoreBreakdown{
		e.scoreIncome(answers),
		e.scoreBanking(answers),
		e.scoreDebt(answers),
		e.scoreCredit(answers),
		e.scoreInvesting(answers),
		e.scoreRetirement(answers),
	}

	var total, max int
	for _, b := range breakdowns {
		total += b.Score
		max += b.MaxScore
	}

	pct := 0
	if max > 0 {
		pct = int(math.Round(100 * float64(total) / float64(max)))
	}

	return model.TotalScoreResult{
		TotalScore: total,
		MaxScore:   max,
		Percentage: pct,
		Breakdowns: breakdowns,
	}
}

func (e *Engine) scoreIncome(answers model.AnswerMap) model.ScoreBreakdown {
	c := e.cfg.Income
	var score int
	var details []string

	if answers.String(questionnaire.QHasIncome) == questionnaire.AnswerYes {
		score += c.HasIncome
		details = append(details, fmt.Sprintf("+ Has income (+%d points)", c.HasIncome))
	} else {
		details = append(details, "- No income (+0 points)")
	}

	income := answers.Number(questionnaire.QMonthlyIncome)
	spending := answers.Number(questionnaire.QMonthlySpending)

	switch {
	case income <= 0:
		// No income: the ratio is undefined, so the sub-rule is skipped.
		details = append(details, "- Spending ratio not evaluated: no income (+0 points)")
	case spending/income <= c.RatioExcellent:
		score += c.PtsExcellent
		details = append(details, fmt.Sprintf("+ Spending at or below %.0f%% of income (+%d points)",
			c.RatioExcellent*100, c.PtsExcellent))
	case spending/income <= c.RatioGood:
		score += c.PtsGood
		details = append(details, fmt.Sprintf("+ Spending at or below %.0f%% of income (+%d points)",
			c.RatioGood*100, c.PtsGood))
	case spending/income <= c.RatioHigh:
		score += c.PtsHigh
		details = append(details, fmt.Sprintf("! Spending at or below %.0f%% of income (+%d points)",
			c.RatioHigh*100, c.PtsHigh))
	default:
		details = append(details, fmt.Sprintf("- Spending above %.0f%% of income (+0 points)", c.RatioHigh*100))
	}

	return model.ScoreBreakdown{
		Section:  questionnaire.SectionIncome,
		Score:    score,
		MaxScore: c.Max,
		Details:  details,
	}
}

func (e *Engine) scoreBanking(answers model.AnswerMap) model.ScoreBreakdown {
	c := e.cfg.Banking
	var score int
	var details []string

	if answers.String(questionnaire.QHasChecking) == questionnaire.AnswerYes {
		score += c.HasChecking
		details = append(details, fmt.Sprintf("+ Has checking account (+%d points)", c.HasChecking))
	} else {
		details = append(details, "- No checking account (+0 points)")
	}

	if answers.String(questionnaire.QHasHYSA) == questionnaire.AnswerYes {
		score += c.HasHYSA
		details = append(details, fmt.Sprintf("+ Has high-yield savings account (+%d points)", c.HasHYSA))
	} else {
		details = append(details, "- No high-yield savings account (+0 points)")
	}

	balance := answers.Number(questionnaire.QCheckingBalance)
	spending := answers.Number(questionnaire.QMonthlySpending)
	switch {
	case spending <= 0:
		details = append(details, "- Checking balance cushion not evaluated: no monthly spending (+0 points)")
	case balance > 2*spending:
		score += c.RunwayDouble
		details = append(details, fmt.Sprintf("+ Checking balance %s covers over two months of spending (+%d points)",
			money.Format(balance), c.RunwayDouble))
	case balance > spending:
		score += c.RunwayCovered
		details = append(details, fmt.Sprintf("+ Checking balance %s covers a month of spending (+%d points)",
			money.Format(balance), c.RunwayCovered))
	case balance > 0:
		score += c.RunwaySome
		details = append(details, fmt.Sprintf("! Checking balance %s below monthly spending (+%d points)",
			money.Format(balance), c.RunwaySome))
	default:
		details = append(details, "- No checking balance (+0 points)")
	}

	return model.ScoreBreakdown{
		Section:  questionnaire.SectionBanking,
		Score:    score,
		MaxScore: c.Max,
		Details:  details,
	}
}

func (e *Engine) scoreDebt(answers model.AnswerMap) model.ScoreBreakdown {
	c := e.cfg.Debt
	var score int
	var details []string

	// Estimated monthly debt service from balance-weighted payment proxies.
	monthlyDebt := answers.Number(questionnaire.QStudentLoanBal)*c.StudentLoanRate +
		answers.Number(questionnaire.QCarLoanBal)*c.CarLoanRate +
		answers.Number(questionnaire.QCardDebtBal)*c.CardRate

	income := answers.Number(questionnaire.QMonthlyIncome)
	switch {
	case income <= 0:
		details = append(details, "- Debt-to-income not evaluated: no income (+0 points)")
	case monthlyDebt == 0:
		score += c.PtsZeroDTI
		details = append(details, fmt.Sprintf("+ No monthly debt payments (+%d points)", c.PtsZeroDTI))
	case monthlyDebt/income <= c.LowDTI:
		score += c.PtsLowDTI
		details = append(details, fmt.Sprintf("+ Low debt-to-income ratio (+%d points)", c.PtsLowDTI))
	case monthlyDebt/income <= c.ModerateDTI:
		score += c.PtsModerateDTI
		details = append(details, fmt.Sprintf("+ Moderate debt-to-income ratio (+%d points)", c.PtsModerateDTI))
	case monthlyDebt/income <= c.HighDTI:
		score += c.PtsHighDTI
		details = append(details, fmt.Sprintf("! High debt-to-income ratio (+%d points)", c.PtsHighDTI))
	default:
		details = append(details, "- Very high debt-to-income ratio (+0 points)")
	}

	hasStudent := answers.String(questionnaire.QHasStudentLoan) == questionnaire.AnswerYes
	hasCar := answers.String(questionnaire.QHasCarLoan) == questionnaire.AnswerYes
	hasCard := answers.String(questionnaire.QHasCardDebt) == questionnaire.AnswerYes
	// The debt-free bonus needs evidence: at least one debt question must
	// have been answered, or an untouched questionnaire would score points.
	answeredAny := answers.String(questionnaire.QHasStudentLoan) != "" ||
		answers.String(questionnaire.QHasCarLoan) != "" ||
		answers.String(questionnaire.QHasCardDebt) != ""
	switch {
	case !answeredAny:
		details = append(details, "- Debt mix not evaluated: no debt questions answered (+0 points)")
	case !hasStudent && !hasCar && !hasCard:
		score += c.PtsNoDebt
		details = append(details, fmt.Sprintf("+ No debt (+%d points)", c.PtsNoDebt))
	case hasCard:
		score += c.PtsCardDebt
		details = append(details, fmt.Sprintf("! Carrying credit card debt (+%d points)", c.PtsCardDebt))
	default:
		score += c.PtsInstallment
		details = append(details, fmt.Sprintf("+ Installment debt only (+%d points)", c.PtsInstallment))
	}

	// Both sub-rules together can exceed the category budget; truncate.
	if score > c.Max {
		score = c.Max
	}

	return model.ScoreBreakdown{
		Section:  questionnaire.SectionDebt,
		Score:    score,
		MaxScore: c.Max,
		Details:  details,
	}
}

func (e *Engine) scoreCredit(answers model.AnswerMap) model.ScoreBreakdown {
	c := e.cfg.Credit
	var score int
	var details []string

	tier := answers.String(questionnaire.QCreditTier)
	if pts, ok := c.TierPts[tier]; ok {
		score += pts
		details = append(details, fmt.Sprintf("+ Credit score tier %q (+%d points)", tier, pts))
	} else {
		details = append(details, "- Unknown credit score (+0 points)")
	}

	cards := answers.String(questionnaire.QCardCount)
	if pts, ok := c.CardPts[cards]; ok {
		score += pts
		details = append(details, fmt.Sprintf("+ Credit card history (+%d points)", pts))
	} else {
		details = append(details, "- No credit cards (+0 points)")
	}

	return model.ScoreBreakdown{
		Section:  questionnaire.SectionCredit,
		Score:    score,
		MaxScore: c.Max,
		Details:  details,
	}
}

func (e *Engine) scoreInvesting(answers model.AnswerMap) model.ScoreBreakdown {
	c := e.cfg.Investing
	var score int
	var details []string

	if answers.String(questionnaire.QHasBrokerage) == questionnaire.AnswerYes {
		score += c.HasBrokerage
		details = append(details, fmt.Sprintf("+ Has brokerage account (+%d points)", c.HasBrokerage))
	} else {
		details = append(details, "- No brokerage account (+0 points)")
	}

	types := answers.List(questionnaire.QInvestTypes)
	switch {
	case len(types) > 1:
		score += c.PtsDiversified
		details = append(details, fmt.Sprintf("+ Diversified investments (+%d points)", c.PtsDiversified))
	case len(types) == 1:
		score += c.PtsSingleType
		details = append(details, fmt.Sprintf("! Single investment type (+%d points)", c.PtsSingleType))
	default:
		details = append(details, "- No investments (+0 points)")
	}

	if answers.Number(questionnaire.QInvestBalance) > 0 {
		score += c.HasBalance
		details = append(details, fmt.Sprintf("+ Has invested balance (+%d points)", c.HasBalance))
	} else {
		details = append(details, "- No invested balance (+0 points)")
	}

	return model.ScoreBreakdown{
		Section:  questionnaire.SectionInvesting,
		Score:    score,
		MaxScore: c.Max,
		Details:  details,
	}
}

func (e *Engine) scoreRetirement(answers model.AnswerMap) model.ScoreBreakdown {
	c := e.cfg.Retirement
	var score int
	var details []string

	if answers.String(questionnaire.QHasRothIRA) == questionnaire.AnswerYes {
		score += c.HasRothIRA
		details = append(details, fmt.Sprintf("+ Has Roth IRA (+%d points)", c.HasRothIRA))
	} else {
		details = append(details, "- No Roth IRA (+0 points)")
	}

	balance := answers.Number(questionnaire.QRothBalance)
	switch {
	case balance >= c.BalTop:
		score += c.TierTop
		details = append(details, fmt.Sprintf("+ Roth IRA balance %s (+%d points)", money.Format(balance), c.TierTop))
	case balance >= c.BalHigh:
		score += c.TierHigh
		details = append(details, fmt.Sprintf("+ Roth IRA balance %s (+%d points)", money.Format(balance), c.TierHigh))
	case balance >= c.BalMid:
		score += c.TierMid
		details = append(details, fmt.Sprintf("+ Roth IRA balance %s (+%d points)", money.Format(balance), c.TierMid))
	case balance >= c.BalLow:
		score += c.TierLow
		details = append(details, fmt.Sprintf("! Roth IRA balance %s (+%d points)", money.Format(balance), c.TierLow))
	case balance > 0:
		score += c.TierAny
		details = append(details, fmt.Sprintf("! Roth IRA balance %s (+%d points)", money.Format(balance), c.TierAny))
	default:
		details = append(details, "- No Roth IRA balance (+0 points)")
	}

	return model.ScoreBreakdown{
		Section:  questionnaire.SectionRetirement,
		Score:    score,
		MaxScore: c.Max,
		Details:  details,
	}
}
