package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
)

func testProfile() employee.CompensationProfile {
	return employee.CompensationProfile{
		EmployeeID:         "e1",
		BasicSalary:        decimal.NewFromInt(26000), // daily wage 1000
		SalaryRateType:     employee.RateMonthly,
		WorkHoursPerDay:    decimal.NewFromInt(9),
		LunchHoursPerDay:   decimal.NewFromInt(1),
		OvertimeMultiplier: decimal.NewFromFloat(1.25),
	}
}

func TestCalculate_LateAndOvertime(t *testing.T) {
	b := Calculate(testProfile(), PeriodAdjustments{
		LateMinutes:     30,
		OvertimeMinutes: 60,
	})

	// perMinuteRate = 1000 / 8 / 60 = 2.0833...
	assert.True(t, b.DailyWage.Equal(decimal.NewFromInt(1000)), "daily wage %s", b.DailyWage)
	assert.True(t, b.LateDeduction.Equal(decimal.NewFromFloat(62.50)), "late %s", b.LateDeduction)
	assert.True(t, b.UndertimeDeduction.IsZero())
	assert.True(t, b.AbsentDeduction.IsZero())
	assert.True(t, b.OvertimePay.Equal(decimal.NewFromFloat(156.25)), "overtime %s", b.OvertimePay)
	assert.True(t, b.NetPay.Equal(decimal.NewFromFloat(1093.75)), "net %s", b.NetPay)
}

func TestCalculate_AbsentScaledSixtyfold(t *testing.T) {
	// The absent line multiplies by 60 a second time, so 8 "minutes" of
	// absence (one paid day recorded as hours) costs exactly one daily wage.
	b := Calculate(testProfile(), PeriodAdjustments{AbsentMinutes: 8})

	assert.True(t, b.AbsentDeduction.Equal(decimal.NewFromInt(1000)), "absent %s", b.AbsentDeduction)
	assert.True(t, b.NetPay.IsZero(), "net %s", b.NetPay)
}

func TestCalculate_NetPayIdentity(t *testing.T) {
	b := Calculate(testProfile(), PeriodAdjustments{
		LateMinutes:      17,
		UndertimeMinutes: 43,
		AbsentMinutes:    8,
		OvertimeMinutes:  90,
	})

	want := b.DailyWage.Sub(b.TotalDeductions()).Add(b.OvertimePay).Round(2)
	assert.True(t, b.NetPay.Sub(want).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"net %s vs %s", b.NetPay, want)
}

func TestCalculate_ZeroPaidHours(t *testing.T) {
	p := testProfile()
	p.WorkHoursPerDay = decimal.NewFromInt(1)
	p.LunchHoursPerDay = decimal.NewFromInt(1)

	b := Calculate(p, PeriodAdjustments{LateMinutes: 30})

	assert.True(t, b.LateDeduction.IsZero())
	assert.True(t, b.NetPay.Equal(b.DailyWage))
}

func TestCalculate_UndertimeMirrorsLate(t *testing.T) {
	late := Calculate(testProfile(), PeriodAdjustments{LateMinutes: 30})
	ut := Calculate(testProfile(), PeriodAdjustments{UndertimeMinutes: 30})

	assert.True(t, late.LateDeduction.Equal(ut.UndertimeDeduction))
	assert.True(t, late.NetPay.Equal(ut.NetPay))
}

func TestDailyWage_RateTypes(t *testing.T) {
	tests := []struct {
		rate employee.SalaryRateType
		want string
	}{
		{employee.RateMonthly, "1000"},
		{employee.RateSemiMonthly, "2000"},
		{employee.RateWeekly, "4333.333333"},
	}

	for _, tt := range tests {
		p := testProfile()
		p.SalaryRateType = tt.rate
		want, _ := decimal.NewFromString(tt.want)
		got := p.DailyWage().Round(6)
		assert.True(t, got.Equal(want), "%s: got %s want %s", tt.rate, got, want)
	}
}
