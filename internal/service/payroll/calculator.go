package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
)

// absentMinuteScale multiplies absent minutes a second time by 60, on top of
// the per-minute rate. The upstream capture layer records whole absent days as
// hour counts in the minutes field, so the extra factor lands each absent day
// at exactly one daily wage. Changing this constant changes every historical
// absence amount; keep it in sync with the processor's absent-minutes input.
var absentMinuteScale = decimal.NewFromInt(60)

var minutesPerHour = decimal.NewFromInt(60)

// PeriodAdjustments - the per-period minute totals the calculator consumes.
type PeriodAdjustments struct {
	LateMinutes      int64
	UndertimeMinutes int64
	AbsentMinutes    int64
	OvertimeMinutes  int64
}

// Breakdown - the independently reported adjustment lines plus net pay.
type Breakdown struct {
	DailyWage          decimal.Decimal
	LateDeduction      decimal.Decimal
	UndertimeDeduction decimal.Decimal
	AbsentDeduction    decimal.Decimal
	OvertimePay        decimal.Decimal
	NetPay             decimal.Decimal
}

// TotalDeductions sums the three attendance deductions. Overtime is an
// earning and not included.
func (b Breakdown) TotalDeductions() decimal.Decimal {
	return b.LateDeduction.Add(b.UndertimeDeduction).Add(b.AbsentDeduction)
}

// Lines renders the breakdown as named deduction lines for the payroll detail.
func (b Breakdown) Lines() []payroll.DeductionLine {
	return []payroll.DeductionLine{
		{Kind: payroll.KindLate, Name: "Late", Amount: b.LateDeduction},
		{Kind: payroll.KindUndertime, Name: "Undertime", Amount: b.UndertimeDeduction},
		{Kind: payroll.KindAbsent, Name: "Absent", Amount: b.AbsentDeduction},
		{Kind: payroll.KindOvertimePay, Name: "Overtime Pay", Amount: b.OvertimePay},
	}
}

// Calculate converts the period's minute totals into deduction and earning
// amounts against one compensation profile.
//
//	perMinuteRate      = dailyWage / paidHours / 60
//	lateDeduction      = perMinuteRate * lateMinutes
//	undertimeDeduction = perMinuteRate * undertimeMinutes
//	absentDeduction    = perMinuteRate * absentMinutes * 60
//	overtimePay        = perMinuteRate * overtimeMinutes * overtimeMultiplier
//	netPay             = dailyWage - deductions + overtimePay
func Calculate(profile employee.CompensationProfile, adj PeriodAdjustments) Breakdown {
	dailyWage := profile.DailyWage()

	paidHours := profile.PaidHours()
	if paidHours.Sign() <= 0 {
		return Breakdown{DailyWage: dailyWage, NetPay: dailyWage}
	}
	perMinuteRate := dailyWage.Div(paidHours).Div(minutesPerHour)

	b := Breakdown{
		DailyWage:          dailyWage,
		LateDeduction:      perMinuteRate.Mul(decimal.NewFromInt(adj.LateMinutes)).Round(2),
		UndertimeDeduction: perMinuteRate.Mul(decimal.NewFromInt(adj.UndertimeMinutes)).Round(2),
		AbsentDeduction:    perMinuteRate.Mul(decimal.NewFromInt(adj.AbsentMinutes).Mul(absentMinuteScale)).Round(2),
		OvertimePay:        perMinuteRate.Mul(decimal.NewFromInt(adj.OvertimeMinutes)).Mul(profile.OvertimeMultiplier).Round(2),
	}
	b.NetPay = dailyWage.
		Sub(b.LateDeduction).
		Sub(b.UndertimeDeduction).
		Sub(b.AbsentDeduction).
		Add(b.OvertimePay).
		Round(2)

	return b
}
