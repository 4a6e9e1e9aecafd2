package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DepartmentAggregate - live per-department source data for the department family.
type DepartmentAggregate struct {
	DepartmentID     string
	DepartmentName   string
	EmployeeCount    int
	TotalBasicSalary decimal.Decimal
}

type SnapshotRepository interface {
	// Single-row inserts; the generator loops so one bad row never aborts a batch.
	InsertPayrollRow(ctx context.Context, row PayrollRow) error
	InsertAttendanceRow(ctx context.Context, row AttendanceRow) error
	InsertEmployeeRow(ctx context.Context, row EmployeeRow) error
	InsertDepartmentRow(ctx context.Context, row DepartmentRow) error
	InsertDeductionRow(ctx context.Context, row DeductionRow) error

	// DeleteDeductionRows clears prior deduction snapshots matching the scope.
	// Must run inside the same transaction as the inserts that follow it.
	DeleteDeductionRows(ctx context.Context, start, end *time.Time, employeeID *string) (int64, error)

	ListPayrollRows(ctx context.Context, f Filter, callerEmployeeID string, canSeeAll bool) ([]PayrollRow, int64, error)
	ListAttendanceRows(ctx context.Context, f Filter, callerEmployeeID string, canSeeAll bool) ([]AttendanceRow, int64, error)
	ListEmployeeRows(ctx context.Context, f Filter, callerEmployeeID string, canSeeAll bool) ([]EmployeeRow, int64, error)
	ListDepartmentRows(ctx context.Context, f Filter) ([]DepartmentRow, int64, error)
	ListDeductionRows(ctx context.Context, f Filter, callerEmployeeID string, canSeeAll bool) ([]DeductionRow, int64, error)

	GetPayrollRow(ctx context.Context, reportID int64, callerEmployeeID string, canSeeAll bool) (PayrollRow, error)
	GetAttendanceRow(ctx context.Context, reportID int64, callerEmployeeID string, canSeeAll bool) (AttendanceRow, error)
	GetEmployeeRow(ctx context.Context, reportID int64, callerEmployeeID string, canSeeAll bool) (EmployeeRow, error)
	GetDepartmentRow(ctx context.Context, reportID int64) (DepartmentRow, error)
	GetDeductionRow(ctx context.Context, reportID int64, callerEmployeeID string, canSeeAll bool) (DeductionRow, error)

	// GetDepartmentAggregates computes the live source data for the
	// department family at generation time.
	GetDepartmentAggregates(ctx context.Context) ([]DepartmentAggregate, error)
}
