package deduction

import (
	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/deduction"
	payrollsvc "github.com/suweldo/payroll-backend-go/internal/service/payroll"
)

var (
	sssRate        = decimal.NewFromFloat(0.045)
	philHealthRate = decimal.NewFromFloat(0.025)
	pagIbigRate    = decimal.NewFromFloat(0.02)
	pagIbigCap     = decimal.NewFromInt(100)
	otherLumpShare = decimal.NewFromFloat(0.10)
)

// AllocateAmount computes the amount for one catalog type against one
// employee's basic salary.
//
//	sss         -> 4.5% of basic salary
//	philhealth  -> 2.5% of basic salary
//	pagibig     -> 2% of basic salary, capped at 100
//	withholding -> progressive estimate on basic salary
//	other       -> catalog default, capped at 10% of the lump total when a
//	               lump is available
func AllocateAmount(tag deduction.Tag, basicSalary, lumpTotal, defaultAmount decimal.Decimal, estimator payrollsvc.TaxEstimator) decimal.Decimal {
	switch tag {
	case deduction.TagSSS:
		return basicSalary.Mul(sssRate).Round(2)
	case deduction.TagPhilHealth:
		return basicSalary.Mul(philHealthRate).Round(2)
	case deduction.TagPagIbig:
		return decimal.Min(basicSalary.Mul(pagIbigRate), pagIbigCap).Round(2)
	case deduction.TagWithholding:
		return estimator.ComputeWithholdingTax(basicSalary)
	default:
		if lumpTotal.Sign() > 0 {
			return decimal.Min(defaultAmount, lumpTotal.Mul(otherLumpShare)).Round(2)
		}
		return defaultAmount.Round(2)
	}
}
