package payroll

import "github.com/shopspring/decimal"

// TaxEstimator computes the monthly withholding tax for a basic salary.
// Swappable per jurisdiction; the bracket table is policy data.
type TaxEstimator interface {
	ComputeWithholdingTax(basicSalary decimal.Decimal) decimal.Decimal
}

// TaxBracket - one progressive bracket. Amounts at or below Floor are taxed by
// earlier brackets; the portion above Floor is taxed at Rate on top of Base.
type TaxBracket struct {
	Floor decimal.Decimal
	Base  decimal.Decimal
	Rate  decimal.Decimal
}

// BracketEstimator applies a progressive bracket table. Brackets must be
// sorted by ascending Floor.
type BracketEstimator struct {
	brackets []TaxBracket
}

func NewBracketEstimator(brackets []TaxBracket) *BracketEstimator {
	return &BracketEstimator{brackets: brackets}
}

// NewTrainLawEstimator returns the Philippine TRAIN-law monthly withholding
// table effective 2023.
func NewTrainLawEstimator() *BracketEstimator {
	d := decimal.NewFromFloat
	return NewBracketEstimator([]TaxBracket{
		{Floor: d(20833), Base: d(0), Rate: d(0.15)},
		{Floor: d(33333), Base: d(1875), Rate: d(0.20)},
		{Floor: d(66667), Base: d(7708.33), Rate: d(0.25)},
		{Floor: d(166667), Base: d(33541.80), Rate: d(0.30)},
		{Floor: d(666667), Base: d(183541.80), Rate: d(0.35)},
	})
}

// ComputeWithholdingTax returns 0 for zero or negative salaries and for
// salaries below the first bracket floor.
func (e *BracketEstimator) ComputeWithholdingTax(basicSalary decimal.Decimal) decimal.Decimal {
	if basicSalary.Sign() <= 0 {
		return decimal.Zero
	}

	tax := decimal.Zero
	for _, b := range e.brackets {
		if basicSalary.LessThanOrEqual(b.Floor) {
			break
		}
		tax = b.Base.Add(basicSalary.Sub(b.Floor).Mul(b.Rate))
	}

	return tax.Round(2)
}
