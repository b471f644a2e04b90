// Package scorer computes the weighted financial-health score from a raw
// answer map.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Config carries every point value and numeric boundary used by the six
// category scorers, so a weighting change never touches control flow.
type Config struct {
	Income     IncomeConfig     `yaml:"income" mapstructure:"income"`
	Banking    BankingConfig    `yaml:"banking" mapstructure:"banking"`
	Debt       DebtConfig       `yaml:"debt" mapstructure:"debt"`
	Credit     CreditConfig     `yaml:"credit" mapstructure:"credit"`
	Investing  InvestingConfig  `yaml:"investing" mapstructure:"investing"`
	Retirement RetirementConfig `yaml:"retirement" mapstructure:"retirement"`
}

// IncomeConfig scores income presence and the spending-to-income ratio.
type IncomeConfig struct {
	Max            int     `yaml:"max" mapstructure:"max"`
	HasIncome      int     `yaml:"has_income" mapstructure:"has_income"`
	RatioExcellent float64 `yaml:"ratio_excellent" mapstructure:"ratio_excellent"`
	RatioGood      float64 `yaml:"ratio_good" mapstructure:"ratio_good"`
	RatioHigh      float64 `yaml:"ratio_high" mapstructure:"ratio_high"`
	PtsExcellent   int     `yaml:"pts_excellent" mapstructure:"pts_excellent"`
	PtsGood        int     `yaml:"pts_good" mapstructure:"pts_good"`
	PtsHigh        int     `yaml:"pts_high" mapstructure:"pts_high"`
}

// BankingConfig scores account presence and the checking-balance runway.
type BankingConfig struct {
	Max           int `yaml:"max" mapstructure:"max"`
	HasChecking   int `yaml:"has_checking" mapstructure:"has_checking"`
	HasHYSA       int `yaml:"has_hysa" mapstructure:"has_hysa"`
	RunwayDouble  int `yaml:"runway_double" mapstructure:"runway_double"`
	RunwayCovered int `yaml:"runway_covered" mapstructure:"runway_covered"`
	RunwaySome    int `yaml:"runway_some" mapstructure:"runway_some"`
}

// DebtConfig scores the estimated debt-to-income ratio and debt mix. The
// balance rates are payment-rate proxies, not real amortization schedules.
type DebtConfig struct {
	Max             int     `yaml:"max" mapstructure:"max"`
	StudentLoanRate float64 `yaml:"student_loan_rate" mapstructure:"student_loan_rate"`
	CarLoanRate     float64 `yaml:"car_loan_rate" mapstructure:"car_loan_rate"`
	CardRate        float64 `yaml:"card_rate" mapstructure:"card_rate"`
	PtsZeroDTI      int     `yaml:"pts_zero_dti" mapstructure:"pts_zero_dti"`
	PtsLowDTI       int     `yaml:"pts_low_dti" mapstructure:"pts_low_dti"`
	PtsModerateDTI  int     `yaml:"pts_moderate_dti" mapstructure:"pts_moderate_dti"`
	PtsHighDTI      int     `yaml:"pts_high_dti" mapstructure:"pts_high_dti"`
	LowDTI          float64 `yaml:"low_dti" mapstructure:"low_dti"`
	ModerateDTI     float64 `yaml:"moderate_dti" mapstructure:"moderate_dti"`
	HighDTI         float64 `yaml:"high_dti" mapstructure:"high_dti"`
	PtsNoDebt       int     `yaml:"pts_no_debt" mapstructure:"pts_no_debt"`
	PtsInstallment  int     `yaml:"pts_installment" mapstructure:"pts_installment"`
	PtsCardDebt     int     `yaml:"pts_card_debt" mapstructure:"pts_card_debt"`
}

// CreditConfig scores the self-reported credit tier and card count.
type CreditConfig struct {
	Max     int            `yaml:"max" mapstructure:"max"`
	TierPts map[string]int `yaml:"tier_pts" mapstructure:"tier_pts"`
	CardPts map[string]int `yaml:"card_pts" mapstructure:"card_pts"`
}

// InvestingConfig scores brokerage presence, diversification, and balance.
type InvestingConfig struct {
	Max            int `yaml:"max" mapstructure:"max"`
	HasBrokerage   int `yaml:"has_brokerage" mapstructure:"has_brokerage"`
	PtsDiversified int `yaml:"pts_diversified" mapstructure:"pts_diversified"`
	PtsSingleType  int `yaml:"pts_single_type" mapstructure:"pts_single_type"`
	HasBalance     int `yaml:"has_balance" mapstructure:"has_balance"`
}

// RetirementConfig scores Roth IRA presence and its balance tiers. The
// Bal* fields are the inclusive lower boundaries for the matching Tier*
// points.
type RetirementConfig struct {
	Max        int     `yaml:"max" mapstructure:"max"`
	HasRothIRA int     `yaml:"has_roth_ira" mapstructure:"has_roth_ira"`
	BalTop     float64 `yaml:"bal_top" mapstructure:"bal_top"`
	BalHigh    float64 `yaml:"bal_high" mapstructure:"bal_high"`
	BalMid     float64 `yaml:"bal_mid" mapstructure:"bal_mid"`
	BalLow     float64 `yaml:"bal_low" mapstructure:"bal_low"`
	TierTop    int     `yaml:"tier_top" mapstructure:"tier_top"`
	TierHigh   int     `yaml:"tier_high" mapstructure:"tier_high"`
	TierMid    int     `yaml:"tier_mid" mapstructure:"tier_mid"`
	TierLow    int     `yaml:"tier_low" mapstructure:"tier_low"`
	TierAny    int     `yaml:"tier_any" mapstructure:"tier_any"`
}

// DefaultConfig returns the canonical rule set. Category maxima sum to 95.
func DefaultConfig() Config {
	return Config{
		Income: IncomeConfig{
			Max:            20,
			HasIncome:      5,
			RatioExcellent: 0.7,
			RatioGood:      0.9,
			RatioHigh:      1.1,
			PtsExcellent:   15,
			PtsGood:        10,
			PtsHigh:        7,
		},
		Banking: BankingConfig{
			Max:           25,
			HasChecking:   10,
			HasHYSA:       10,
			RunwayDouble:  5,
			RunwayCovered: 2,
			RunwaySome:    1,
		},
		Debt: DebtConfig{
			Max:             5,
			StudentLoanRate: 0.012,
			CarLoanRate:     0.025,
			CardRate:        0.035,
			PtsZeroDTI:      3,
			PtsLowDTI:       4,
			PtsModerateDTI:  3,
			PtsHighDTI:      2,
			LowDTI:          0.15,
			ModerateDTI:     0.30,
			HighDTI:         0.45,
			PtsNoDebt:       2,
			PtsInstallment:  1,
			PtsCardDebt:     1,
		},
		Credit: CreditConfig{
			Max: 20,
			TierPts: map[string]int{
				"excellent": 12,
				"very_good": 8,
				"good":      6,
				"fair":      4,
				"poor":      1,
			},
			CardPts: map[string]int{
				"one":       3,
				"two":       4,
				"three":     5,
				"four_plus": 6,
			},
		},
		Investing: InvestingConfig{
			Max:            20,
			HasBrokerage:   7,
			PtsDiversified: 7,
			PtsSingleType:  3,
			HasBalance:     6,
		},
		Retirement: RetirementConfig{
			Max:        10,
			HasRothIRA: 4,
			BalTop:     25000,
			BalHigh:    17500,
			BalMid:     10000,
			BalLow:     5000,
			TierTop:    6,
			TierHigh:   5,
			TierMid:    4,
			TierLow:    3,
			TierAny:    2,
		},
	}
}

// TotalMax returns the sum of all category maxima.
func TotalMax(c Config) int {
	return c.Income.Max + c.Banking.Max + c.Debt.Max + c.Credit.Max +
		c.Investing.Max + c.Retirement.Max
}

// ValidateConfig checks that a Config is internally consistent.
func ValidateConfig(c Config) error {
	var errs []string

	maxima := map[string]int{
		"income_max":     c.Income.Max,
		"banking_max":    c.Banking.Max,
		"debt_max":       c.Debt.Max,
		"credit_max":     c.Credit.Max,
		"investing_max":  c.Investing.Max,
		"retirement_max": c.Retirement.Max,
	}
	for name, m := range maxima {
		if m <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be > 0", name))
		}
	}

	if c.Income.HasIncome+c.Income.PtsExcellent > c.Income.Max {
		errs = append(errs, "income points exceed income_max")
	}
	if !(c.Income.RatioExcellent < c.Income.RatioGood && c.Income.RatioGood < c.Income.RatioHigh) {
		errs = append(errs, "income ratio boundaries must be strictly increasing")
	}
	if c.Banking.HasChecking+c.Banking.HasHYSA+c.Banking.RunwayDouble > c.Banking.Max {
		errs = append(errs, "banking points exceed banking_max")
	}
	if !(c.Debt.LowDTI < c.Debt.ModerateDTI && c.Debt.ModerateDTI < c.Debt.HighDTI) {
		errs = append(errs, "debt DTI boundaries must be strictly increasing")
	}
	if c.Debt.StudentLoanRate < 0 || c.Debt.CarLoanRate < 0 || c.Debt.CardRate < 0 {
		errs = append(errs, "debt payment rates must be >= 0")
	}

	var maxTier, maxCards int
	for _, p := range c.Credit.TierPts {
		if p > maxTier {
			maxTier = p
		}
	}
	for _, p := range c.Credit.CardPts {
		if p > maxCards {
			maxCards = p
		}
	}
	if maxTier+maxCards > c.Credit.Max {
		errs = append(errs, "credit points exceed credit_max")
	}

	if c.Investing.HasBrokerage+c.Investing.PtsDiversified+c.Investing.HasBalance > c.Investing.Max {
		errs = append(errs, "investing points exceed investing_max")
	}
	if c.Retirement.HasRothIRA+c.Retirement.TierTop > c.Retirement.Max {
		errs = append(errs, "retirement points exceed retirement_max")
	}
	if !(c.Retirement.BalLow < c.Retirement.BalMid && c.Retirement.BalMid < c.Retirement.BalHigh &&
		c.Retirement.BalHigh < c.Retirement.BalTop) {
		errs = append(errs, "retirement balance boundaries must be strictly increasing")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
