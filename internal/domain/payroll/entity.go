package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. Transitions are monotonic: processed -> paid only.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
)

// DeductionKind tags one monetary adjustment line.
type DeductionKind string

const (
	KindLate           DeductionKind = "late"
	KindUndertime      DeductionKind = "undertime"
	KindAbsent         DeductionKind = "absent"
	KindOvertimePay    DeductionKind = "overtime-pay" // earning, not a deduction
	KindGovContrib     DeductionKind = "government-contribution"
	KindWithholdingTax DeductionKind = "withholding-tax"
	KindOther          DeductionKind = "other"
)

// DeductionLine - one named adjustment contributing to net pay.
type DeductionLine struct {
	Kind   DeductionKind   `json:"kind"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Record - one generated payroll result per employee per period.
// Invariants: NetPay = BasicSalary + OvertimePay - TotalDeductions and
// TotalDeductions equals the sum of the deduction lines stored in the detail.
type Record struct {
	ID              string
	EmployeeID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	BasicSalary     decimal.Decimal
	OvertimePay     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	DeductionDetail map[string]decimal.Decimal // line name -> amount
	Status          Status
	GeneratedBy     *string
	GeneratedAt     time.Time
	Archived        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName   *string
	DepartmentName *string
}

// CanTransition reports whether a status change is allowed.
func (s Status) CanTransition(to Status) bool {
	return s == StatusProcessed && to == StatusPaid
}
