package recommend

import (
	"github.com/finpulse/finpulse-cli/internal/model"
	"github.com/finpulse/finpulse-cli/internal/questionnaire"
)

// Generate evaluates every recommendation rule against the answers and
// returns the categories that fire, in a fixed order: credit cards,
// banking, investing, retirement, tools. Output depends only on the
// answers, so repeated calls return identical slices.
func Generate(answers model.AnswerMap) []model.RecommendationCategory {
	var out []model.RecommendationCategory
	out = append(out, creditCardRecommendations(answers)...)
	out = append(out, bankingRecommendations(answers)...)
	out = append(out, investingRecommendations(answers)...)
	out = append(out, retirementRecommendations(answers)...)
	out = append(out, toolRecommendations(answers)...)
	return out
}

func creditCardRecommendations(answers model.AnswerMap) []model.RecommendationCategory {
	tier := answers.String(questionnaire.QCreditTier)
	cards := answers.String(questionnaire.QCardCount)
	var out []model.RecommendationCategory

	strongCredit := tier == questionnaire.TierExcellent || tier == questionnaire.TierVeryGood
	manyCards := cards == questionnaire.CardsThree || cards == questionnaire.CardsFourPlus
	fewCards := cards == questionnaire.CardsOne || cards == questionnaire.CardsTwo

	// Premium and mid-tier gates are disjoint on card count, so at most
	// one of the two fires for any answer set.
	if strongCredit && manyCards {
		out = append(out, category("premium_travel_cards"))
	}
	if (strongCredit || tier == questionnaire.TierGood) && fewCards {
		out = append(out, category("rewards_cards"))
	}
	if (tier == questionnaire.TierGood || tier == questionnaire.TierFair) &&
		(cards == questionnaire.CardsNone || cards == questionnaire.CardsOne) {
		out = append(out, category("no_fee_cards"))
	}
	if tier == questionnaire.TierPoor || tier == questionnaire.AnswerUnknown ||
		cards == questionnaire.CardsNone {
		out = append(out, category("credit_building_cards"))
	}
	return out
}

func bankingRecommendations(answers model.AnswerMap) []model.RecommendationCategory {
	var out []model.RecommendationCategory
	if noOrUnknown(answers, questionnaire.QHasChecking) {
		out = append(out, category("checking_accounts"))
	}
	if noOrUnknown(answers, questionnaire.QHasHYSA) {
		out = append(out, category("high_yield_savings"))
	}
	return out
}

func investingRecommendations(answers model.AnswerMap) []model.RecommendationCategory {
	if noOrUnknown(answers, questionnaire.QHasBrokerage) {
		return []model.RecommendationCategory{category("investment_accounts")}
	}
	if len(answers.List(questionnaire.QInvestTypes)) > 0 {
		return []model.RecommendationCategory{category("advanced_platforms")}
	}
	return nil
}

func retirementRecommendations(answers model.AnswerMap) []model.RecommendationCategory {
	var out []model.RecommendationCategory
	if noOrUnknown(answers, questionnaire.QHasRothIRA) {
		out = append(out, category("retirement_accounts"))
	}
	if noOrUnknown(answers, questionnaire.QHas401k) {
		out = append(out, category("retirement_401k_info"))
	}
	return out
}

func toolRecommendations(answers model.AnswerMap) []model.RecommendationCategory {
	var out []model.RecommendationCategory
	if answers.String(questionnaire.QCreditTier) == questionnaire.AnswerUnknown {
		out = append(out, category("credit_monitoring"))
	}

	income := answers.Number(questionnaire.QMonthlyIncome)
	spending := answers.Number(questionnaire.QMonthlySpending)
	// The ratio check only applies with positive income; the second clause
	// still catches any spender with no income at all.
	if (income > 0 && spending/income > 0.8) || spending > income {
		out = append(out, category("budgeting_tools"))
	}
	return out
}

// noOrUnknown reports whether the user answered "no" or "unknown". An
// unanswered question does not fire the rule.
func noOrUnknown(answers model.AnswerMap, id model.QuestionID) bool {
	v := answers.String(id)
	return v == questionnaire.AnswerNo || v == questionnaire.AnswerUnknown
}
