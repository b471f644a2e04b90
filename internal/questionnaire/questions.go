// Package questionnaire defines the branching financial self-assessment and
// the traversal rule that walks it.
package questionnaire

import "github.com/finpulse/finpulse-cli/internal/model"

// Section labels shared by questions and score breakdowns.
const (
	SectionIncome     = "Income & Budgeting"
	SectionBanking    = "Banking & Accounts"
	SectionDebt       = "Debt Management"
	SectionCredit     = "Debt & Credit Health"
	SectionInvesting  = "Investing Knowledge & Habits"
	SectionRetirement = "Long-Term Savings & Retirement"
)

// Well-known question IDs referenced by the scorer and recommendation rules.
const (
	QHasIncome       model.QuestionID = "1"
	QMonthlyIncome   model.QuestionID = "2"
	QMonthlySpending model.QuestionID = "3"
	QAge             model.QuestionID = "3.5"
	QHasChecking     model.QuestionID = "4"
	QCheckingBank    model.QuestionID = "5"
	QCheckingBalance model.QuestionID = "6"
	QHasSavings      model.QuestionID = "7"
	QSavingsBank     model.QuestionID = "8"
	QSavingsBalance  model.QuestionID = "9"
	QHasHYSA         model.QuestionID = "10"
	QHYSABank        model.QuestionID = "11"
	QHYSABalance     model.QuestionID = "12"
	QHasStudentLoan  model.QuestionID = "13"
	QStudentLoanBal  model.QuestionID = "14"
	QHasCarLoan      model.QuestionID = "15"
	QCarLoanBal      model.QuestionID = "16"
	QHasMortgage     model.QuestionID = "17"
	QMortgageBal     model.QuestionID = "18"
	QHasCardDebt     model.QuestionID = "19"
	QCardDebtBal     model.QuestionID = "20"
	QHasOtherDebt    model.QuestionID = "21"
	QOtherDebtTypes  model.QuestionID = "22"
	QOtherDebtBal    model.QuestionID = "23"
	QCardCount       model.QuestionID = "24"
	QCreditTier      model.QuestionID = "25"
	QHasBrokerage    model.QuestionID = "26"
	QBrokerageName   model.QuestionID = "27"
	QInvestBalance   model.QuestionID = "28"
	QInvestTypes     model.QuestionID = "29"
	QHasRothIRA      model.QuestionID = "30"
	QRothBank        model.QuestionID = "31"
	QRothBalance     model.QuestionID = "32"
	QRothInvestTypes model.QuestionID = "33"
	QHas401k         model.QuestionID = "34"
	Q401kBalance     model.QuestionID = "35"
)

// Answer tokens for single-select questions.
const (
	AnswerYes     = "yes"
	AnswerNo      = "no"
	AnswerUnknown = "unknown"
	AnswerNotSure = "not_sure"
)

// Credit score tiers (question 25).
const (
	TierExcellent = "excellent"
	TierVeryGood  = "very_good"
	TierGood      = "good"
	TierFair      = "fair"
	TierPoor      = "poor"
)

// Card counts (question 24).
const (
	CardsNone     = "none"
	CardsOne      = "one"
	CardsTwo      = "two"
	CardsThree    = "three"
	CardsFourPlus = "four_plus"
)

// Age bounds accepted by the age question.
const (
	MinAge = 18
	MaxAge = 100
)

var yesNo = []model.Option{
	{Value: AnswerYes, Label: "Yes"},
	{Value: AnswerNo, Label: "No"},
}

func yesNoUnknown(unknownLabel string) []model.Option {
	return []model.Option{
		{Value: AnswerYes, Label: "Yes"},
		{Value: AnswerNo, Label: "No"},
		{Value: AnswerUnknown, Label: unknownLabel},
	}
}

var investOptions = []model.Option{
	{Value: "stocks", Label: "Individual stocks"},
	{Value: "index_funds", Label: "Index funds"},
	{Value: "bonds", Label: "Bonds"},
	{Value: "options", Label: "Stock options"},
	{Value: "other", Label: "Other"},
}

func ifAnswered(id model.QuestionID, equals string) *model.Condition {
	return &model.Condition{DependsOn: id, Equals: equals}
}

// Questions is the full ordered questionnaire. The fractional age ID ("3.5")
// is preserved so results stored by earlier versions keep their keys.
var Questions = []model.Question{
	{ID: QHasIncome, Section: SectionIncome, Text: "Do you currently have a source of income?",
		Kind: model.InputSingleSelect, Options: yesNo},
	{ID: QMonthlyIncome, Section: SectionIncome, Text: "What is your monthly income after taxes? (Include any money given/gifted to you)",
		Kind: model.InputAmount, Min: 0, Max: 20000, Step: 100, Prefix: "$",
		Condition: ifAnswered(QHasIncome, AnswerYes)},
	{ID: QMonthlySpending, Section: SectionIncome, Text: "What are your total monthly expenses?",
		Kind: model.InputAmount, Min: 0, Max: 20000, Step: 100, Prefix: "$",
		Condition: ifAnswered(QHasIncome, AnswerYes)},
	{ID: QAge, Section: SectionIncome, Text: "What is your age?",
		Kind: model.InputText},

	{ID: QHasChecking, Section: SectionBanking, Text: "Do you have a checking account?",
		Kind: model.InputSingleSelect, Options: yesNoUnknown("I don't know what a checking account is")},
	{ID: QCheckingBank, Section: SectionBanking, Text: "Which bank is your checking account with?",
		Kind: model.InputText, Condition: ifAnswered(QHasChecking, AnswerYes)},
	{ID: QCheckingBalance, Section: SectionBanking, Text: "What's your typical checking account balance?",
		Kind: model.InputAmount, Min: 0, Max: 50000, Step: 100, Prefix: "$",
		Condition: ifAnswered(QHasChecking, AnswerYes)},
	{ID: QHasSavings, Section: SectionBanking, Text: "Do you have a savings account?",
		Kind: model.InputSingleSelect, Options: yesNoUnknown("I don't know what a savings account is")},
	{ID: QSavingsBank, Section: SectionBanking, Text: "Which bank is your savings account with?",
		Kind: model.InputText, Condition: ifAnswered(QHasSavings, AnswerYes)},
	{ID: QSavingsBalance, Section: SectionBanking, Text: "What's your typical savings account balance?",
		Kind: model.InputAmount, Min: 0, Max: 100000, Step: 100, Prefix: "$",
		Condition: ifAnswered(QHasSavings, AnswerYes)},
	{ID: QHasHYSA, Section: SectionBanking, Text: "Do you have a high-yield savings account?",
		Kind: model.InputSingleSelect, Options: yesNoUnknown("I don't know what a high-yield savings account is")},
	{ID: QHYSABank, Section: SectionBanking, Text: "Which bank is your high-yield savings account with?",
		Kind: model.InputText, Condition: ifAnswered(QHasHYSA, AnswerYes)},
	{ID: QHYSABalance, Section: SectionBanking, Text: "What's your typical high-yield savings account balance?",
		Kind: model.InputAmount, Min: 0, Max: 100000, Step: 100, Prefix: "$",
		Condition: ifAnswered(QHasHYSA, AnswerYes)},

	{ID: QHasStudentLoan, Section: SectionDebt, Text: "Do you have any student loans?",
		Kind: model.InputSingleSelect, Options: yesNo},
	{ID: QStudentLoanBal, Section: SectionDebt, Text: "What's your total student loan debt?",
		Kind: model.InputAmount, Min: 0, Max: 200000, Step: 1000, Prefix: "$",
		Condition: ifAnswered(QHasStudentLoan, AnswerYes)},
	{ID: QHasCarLoan, Section: SectionDebt, Text: "Do you have a car loan?",
		Kind: model.InputSingleSelect, Options: yesNo},
	{ID: QCarLoanBal, Section: SectionDebt, Text: "What's your car loan balance?",
		Kind: model.InputAmount, Min: 0, Max: 100000, Step: 1000, Prefix: "$",
		Condition: ifAnswered(QHasCarLoan, AnswerYes)},
	{ID: QHasMortgage, Section: SectionDebt, Text: "Do you have a mortgage?",
		Kind: model.InputSingleSelect, Options: yesNo},
	{ID: QMortgageBal, Section: SectionDebt, Text: "What's your mortgage balance?",
		Kind: model.InputAmount, Min: 0, Max: 1000000, Step: 5000, Prefix: "$",
		Condition: ifAnswered(QHasMortgage, AnswerYes)},
	{ID: QHasCardDebt, Section: SectionDebt, Text: "Do you have any credit card debt you carry month-to-month?",
		Kind: model.InputSingleSelect, Options: yesNo},
	{ID: QCardDebtBal, Section: SectionDebt, Text: "What's your credit card debt?",
		Kind: model.InputAmount, Min: 0, Max: 50000, Step: 500, Prefix: "$",
		Condition: ifAnswered(QHasCardDebt, AnswerYes)},
	{ID: QHasOtherDebt, Section: SectionDebt, Text: "Do you have any other forms of debt? (personal loans, medical bills, etc.)",
		Kind: model.InputSingleSelect, Options: yesNo},
	{ID: QOtherDebtTypes, Section: SectionDebt, Text: "What type of debt do you have? (Select all that apply)",
		Kind: model.InputMultiSelect,
		Options: []model.Option{
			{Value: "personal", Label: "Personal loans"},
			{Value: "medical", Label: "Medical debt"},
			{Value: "payday", Label: "Payday loans"},
			{Value: "other", Label: "Other"},
		},
		Condition: ifAnswered(QHasOtherDebt, AnswerYes)},
	{ID: QOtherDebtBal, Section: SectionDebt, Text: "What's your total other debt?",
		Kind: model.InputAmount, Min: 0, Max: 100000, Step: 1000, Prefix: "$",
		Condition: ifAnswered(QHasOtherDebt, AnswerYes)},

	{ID: QCardCount, Section: SectionCredit, Text: "How many credit cards do you have? (Not including any card you are an authorized user on)",
		Kind: model.InputSingleSelect,
		Options: []model.Option{
			{Value: CardsNone, Label: "0"},
			{Value: CardsOne, Label: "1"},
			{Value: CardsTwo, Label: "2"},
			{Value: CardsThree, Label: "3"},
			{Value: CardsFourPlus, Label: "4+"},
		}},
	{ID: QCreditTier, Section: SectionCredit, Text: "What is your credit score?",
		Kind: model.InputSingleSelect,
		Options: []model.Option{
			{Value: TierExcellent, Label: "800+"},
			{Value: TierVeryGood, Label: "740-799"},
			{Value: TierGood, Label: "670-739"},
			{Value: TierFair, Label: "580-669"},
			{Value: TierPoor, Label: "300-579"},
			{Value: AnswerUnknown, Label: "I don't know how to check"},
		}},

	{ID: QHasBrokerage, Section: SectionInvesting, Text: "Do you have a brokerage account?",
		Kind: model.InputSingleSelect, Options: yesNoUnknown("I don't know what a brokerage account is")},
	{ID: QBrokerageName, Section: SectionInvesting, Text: "Which brokerage do you use?",
		Kind: model.InputText, Condition: ifAnswered(QHasBrokerage, AnswerYes)},
	{ID: QInvestBalance, Section: SectionInvesting, Text: "What's your total investment balance?",
		Kind: model.InputAmount, Min: 0, Max: 1000000, Step: 1000, Prefix: "$",
		Condition: ifAnswered(QHasBrokerage, AnswerYes)},
	{ID: QInvestTypes, Section: SectionInvesting, Text: "What are you invested in? (Select all that apply)",
		Kind: model.InputMultiSelect, Options: investOptions,
		Condition: ifAnswered(QHasBrokerage, AnswerYes)},

	{ID: QHasRothIRA, Section: SectionRetirement, Text: "Do you have a Roth IRA?",
		Kind: model.InputSingleSelect, Options: yesNoUnknown("I don't know what a Roth IRA is")},
	{ID: QRothBank, Section: SectionRetirement, Text: "Which bank is your Roth IRA with?",
		Kind: model.InputText, Condition: ifAnswered(QHasRothIRA, AnswerYes)},
	{ID: QRothBalance, Section: SectionRetirement, Text: "What's your Roth IRA balance?",
		Kind: model.InputAmount, Min: 0, Max: 500000, Step: 1000, Prefix: "$",
		Condition: ifAnswered(QHasRothIRA, AnswerYes)},
	{ID: QRothInvestTypes, Section: SectionRetirement, Text: "What are you invested in? (Select all that apply)",
		Kind: model.InputMultiSelect, Options: investOptions,
		Condition: ifAnswered(QHasRothIRA, AnswerYes)},
	{ID: QHas401k, Section: SectionRetirement, Text: "Do you have a 401(k)?",
		Kind: model.InputSingleSelect, Options: yesNoUnknown("I don't know what a 401(k) is")},
	{ID: Q401kBalance, Section: SectionRetirement, Text: "What's your 401(k) balance?",
		Kind: model.InputAmount, Min: 0, Max: 1000000, Step: 1000, Prefix: "$",
		Condition: ifAnswered(QHas401k, AnswerYes)},
}
