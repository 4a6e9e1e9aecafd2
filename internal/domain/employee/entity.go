package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	DepartmentID *string
	EmployeeCode string
	FullName     string
	Position     *string
	Status       Status
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	// Joined fields
	DepartmentName *string
}

type Status string

const (
	StatusActive     Status = "active"
	StatusResigned   Status = "resigned"
	StatusTerminated Status = "terminated"
)

// CompensationProfile - pay basis for one employee. Owned by HR; mutated only
// through the employee-edit workflows, read-only inside the payroll pipeline.
type CompensationProfile struct {
	EmployeeID         string
	BasicSalary        decimal.Decimal
	SalaryRateType     SalaryRateType
	WorkHoursPerDay    decimal.Decimal
	LunchHoursPerDay   decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

type SalaryRateType string

const (
	RateMonthly     SalaryRateType = "monthly"
	RateSemiMonthly SalaryRateType = "semi-monthly"
	RateWeekly      SalaryRateType = "weekly"
)

// workingDaysPerPeriod follows the common 26-working-day payroll convention.
var workingDaysPerPeriod = map[SalaryRateType]int64{
	RateMonthly:     26,
	RateSemiMonthly: 13,
	RateWeekly:      6,
}

// DailyWage converts the basic salary into a daily wage according to the
// salary rate type. Unknown rate types fall back to monthly.
func (p CompensationProfile) DailyWage() decimal.Decimal {
	days, ok := workingDaysPerPeriod[p.SalaryRateType]
	if !ok {
		days = workingDaysPerPeriod[RateMonthly]
	}
	return p.BasicSalary.Div(decimal.NewFromInt(days))
}

// PaidHours is the number of payable hours in one work day.
func (p CompensationProfile) PaidHours() decimal.Decimal {
	return p.WorkHoursPerDay.Sub(p.LunchHoursPerDay)
}
