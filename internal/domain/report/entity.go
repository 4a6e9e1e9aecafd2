package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type enum - the five snapshot families.
type Type string

const (
	TypePayroll    Type = "payroll"
	TypeAttendance Type = "attendance"
	TypeEmployee   Type = "employee"
	TypeDepartment Type = "department"
	TypeDeduction  Type = "deduction"
)

// ParseType validates a report type coming from the URL.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePayroll, TypeAttendance, TypeEmployee, TypeDepartment, TypeDeduction:
		return Type(s), nil
	}
	return "", ErrUnknownType
}

// Snapshot rows are immutable once written. ReportID is a bigserial so the
// default newest-first ordering follows insertion order. BatchID groups the
// rows of one generation run.

type PayrollRow struct {
	ReportID        int64           `json:"report_id"`
	BatchID         string          `json:"batch_id"`
	PayrollID       string          `json:"payroll_id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	DepartmentName  *string         `json:"department_name,omitempty"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	Status          string          `json:"status"`
	GeneratedBy     *string         `json:"generated_by,omitempty"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

type AttendanceRow struct {
	ReportID       int64     `json:"report_id"`
	BatchID        string    `json:"batch_id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	DepartmentName *string   `json:"department_name,omitempty"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	PresentDays    int       `json:"present_days"`
	AbsentDays     int       `json:"absent_days"`
	LeaveDays      int       `json:"leave_days"`
	LateDays       int       `json:"late_days"`
	TotalHours     float64   `json:"total_hours"`
	GeneratedBy    *string   `json:"generated_by,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type EmployeeRow struct {
	ReportID       int64     `json:"report_id"`
	BatchID        string    `json:"batch_id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeCode   string    `json:"employee_code"`
	EmployeeName   string    `json:"employee_name"`
	DepartmentName *string   `json:"department_name,omitempty"`
	Position       *string   `json:"position,omitempty"`
	Status         string    `json:"status"`
	HireDate       time.Time `json:"hire_date"`
	GeneratedBy    *string   `json:"generated_by,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type DepartmentRow struct {
	ReportID         int64           `json:"report_id"`
	BatchID          string          `json:"batch_id"`
	DepartmentID     string          `json:"department_id"`
	DepartmentName   string          `json:"department_name"`
	EmployeeCount    int             `json:"employee_count"`
	TotalBasicSalary decimal.Decimal `json:"total_basic_salary"`
	GeneratedBy      *string         `json:"generated_by,omitempty"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

type DeductionRow struct {
	ReportID      int64           `json:"report_id"`
	BatchID       string          `json:"batch_id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	DeductionName string          `json:"deduction_name"`
	Amount        decimal.Decimal `json:"amount"`
	PeriodStart   *time.Time      `json:"period_start,omitempty"`
	PeriodEnd     *time.Time      `json:"period_end,omitempty"`
	GeneratedBy   *string         `json:"generated_by,omitempty"`
	GeneratedAt   time.Time       `json:"generated_at"`
}
