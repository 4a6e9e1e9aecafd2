package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type snapshotRepository struct {
	db *database.DB
}

func NewSnapshotRepository(db *database.DB) report.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// ========== INSERTS ==========

func (r *snapshotRepository) InsertPayrollRow(ctx context.Context, row report.PayrollRow) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_reports (
			batch_id, payroll_id, employee_id, employee_name, department_name,
			period_start, period_end, basic_salary, overtime_pay, total_deductions,
			net_pay, status, generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := q.Exec(ctx, query,
		row.BatchID, row.PayrollID, row.EmployeeID, row.EmployeeName, row.DepartmentName,
		row.PeriodStart, row.PeriodEnd, row.BasicSalary, row.OvertimePay, row.TotalDeductions,
		row.NetPay, row.Status, row.GeneratedBy, row.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payroll report row: %w", err)
	}
	return nil
}

func (r *snapshotRepository) InsertAttendanceRow(ctx context.Context, row report.AttendanceRow) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_reports (
			batch_id, employee_id, employee_name, department_name, period_start,
			period_end, present_days, absent_days, leave_days, late_days,
			total_hours, generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := q.Exec(ctx, query,
		row.BatchID, row.EmployeeID, row.EmployeeName, row.DepartmentName, row.PeriodStart,
		row.PeriodEnd, row.PresentDays, row.AbsentDays, row.LeaveDays, row.LateDays,
		row.TotalHours, row.GeneratedBy, row.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attendance report row: %w", err)
	}
	return nil
}

func (r *snapshotRepository) InsertEmployeeRow(ctx context.Context, row report.EmployeeRow) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_reports (
			batch_id, employee_id, employee_code, employee_name, department_name,
			position, status, hire_date, generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.Exec(ctx, query,
		row.BatchID, row.EmployeeID, row.EmployeeCode, row.EmployeeName, row.DepartmentName,
		row.Position, row.Status, row.HireDate, row.GeneratedBy, row.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee report row: %w", err)
	}
	return nil
}

func (r *snapshotRepository) InsertDepartmentRow(ctx context.Context, row report.DepartmentRow) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO department_reports (
			batch_id, department_id, department_name, employee_count,
			total_basic_salary, generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		row.BatchID, row.DepartmentID, row.DepartmentName, row.EmployeeCount,
		row.TotalBasicSalary, row.GeneratedBy, row.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert department report row: %w", err)
	}
	return nil
}

func (r *snapshotRepository) InsertDeductionRow(ctx context.Context, row report.DeductionRow) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deduction_reports (
			batch_id, employee_id, employee_name, deduction_name, amount,
			period_start, period_end, generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query,
		row.BatchID, row.EmployeeID, row.EmployeeName, row.DeductionName, row.Amount,
		row.PeriodStart, row.PeriodEnd, row.GeneratedBy, row.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert deduction report row: %w", err)
	}
	return nil
}

// ========== DEDUCTION IDEMPOTENCY DELETE ==========

func (r *snapshotRepository) DeleteDeductionRows(ctx context.Context, start, end *time.Time, employeeID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate()
	if start != nil {
		p.Where("period_start >= ?", *start)
	}
	if end != nil {
		p.Where("period_end <= ?", *end)
	}
	if employeeID != nil {
		p.Where("employee_id = ?", *employeeID)
	}

	query, args := p.DeleteSQL("deduction_reports")
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete deduction report rows: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ========== FILTER PREDICATES ==========

// periodFilter builds the shared predicate for the families that carry a
// period and an employee reference.
func periodFilter(table string, f report.Filter, callerEmployeeID string, canSeeAll bool) *Predicate {
	p := NewPredicate().ScopeEmployee(table+".employee_id", callerEmployeeID, canSeeAll)
	if f.EmployeeID != nil {
		p.Where(table+".employee_id = ?", *f.EmployeeID)
	}
	if f.DepartmentID != nil {
		p.Where(table+".employee_id IN (SELECT id FROM employees WHERE department_id = ?)", *f.DepartmentID)
	}
	if f.StartDate != nil {
		p.Where(table+".period_start >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		p.Where(table+".period_end <= ?", *f.EndDate)
	}
	return p
}

func listTotal(ctx context.Context, q database.Querier, p *Predicate, from string) (int64, error) {
	countSQL, countArgs := p.CountSQL(from)
	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count report rows: %w", err)
	}
	return total, nil
}

// ========== LISTS ==========

const payrollReportColumns = `pr.report_id, pr.batch_id, pr.payroll_id, pr.employee_id,
	pr.employee_name, pr.department_name, pr.period_start, pr.period_end,
	pr.basic_salary, pr.overtime_pay, pr.total_deductions, pr.net_pay,
	pr.status, pr.generated_by, pr.generated_at`

func scanPayrollReportRow(row pgx.Row) (report.PayrollRow, error) {
	var rr report.PayrollRow
	err := row.Scan(
		&rr.ReportID, &rr.BatchID, &rr.PayrollID, &rr.EmployeeID,
		&rr.EmployeeName, &rr.DepartmentName, &rr.PeriodStart, &rr.PeriodEnd,
		&rr.BasicSalary, &rr.OvertimePay, &rr.TotalDeductions, &rr.NetPay,
		&rr.Status, &rr.GeneratedBy, &rr.GeneratedAt,
	)
	return rr, err
}

func (r *snapshotRepository) ListPayrollRows(ctx context.Context, f report.Filter, callerEmployeeID string, canSeeAll bool) ([]report.PayrollRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	p := periodFilter("pr", f, callerEmployeeID, canSeeAll)
	if f.Status != nil {
		p.Where("pr.status = ?", *f.Status)
	}

	total, err := listTotal(ctx, q, p, "payroll_reports pr")
	if err != nil {
		return nil, 0, err
	}

	pageSQL, args := p.PageSQL(payrollReportColumns, "payroll_reports pr", "pr.report_id DESC", f.Page, f.Limit)
	rows, err := q.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll report rows: %w", err)
	}
	defer rows.Close()

	var result []report.PayrollRow
	for rows.Next() {
		rr, err := scanPayrollReportRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll report row: %w", err)
		}
		result = append(result, rr)
	}

	return result, total, nil
}

const attendanceReportColumns = `ar.report_id, ar.batch_id, ar.employee_id, ar.employee_name,
	ar.department_name, ar.period_start, ar.period_end, ar.present_days,
	ar.absent_days, ar.leave_days, ar.late_days, ar.total_hours,
	ar.generated_by, ar.generated_at`

func scanAttendanceReportRow(row pgx.Row) (report.AttendanceRow, error) {
	var rr report.AttendanceRow
	err := row.Scan(
		&rr.ReportID, &rr.BatchID, &rr.EmployeeID, &rr.EmployeeName,
		&rr.DepartmentName, &rr.PeriodStart, &rr.PeriodEnd, &rr.PresentDays,
		&rr.AbsentDays, &rr.LeaveDays, &rr.LateDays, &rr.TotalHours,
		&rr.GeneratedBy, &rr.GeneratedAt,
	)
	return rr, err
}

func (r *snapshotRepository) ListAttendanceRows(ctx context.Context, f report.Filter, callerEmployeeID string, canSeeAll bool) ([]report.AttendanceRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	p := periodFilter("ar", f, callerEmployeeID, canSeeAll)

	total, err := listTotal(ctx, q, p, "attendance_reports ar")
	if err != nil {
		return nil, 0, err
	}

	pageSQL, args := p.PageSQL(attendanceReportColumns, "attendance_reports ar", "ar.report_id DESC", f.Page, f.Limit)
	rows, err := q.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance report rows: %w", err)
	}
	defer rows.Close()

	var result []report.AttendanceRow
	for rows.Next() {
		rr, err := scanAttendanceReportRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance report row: %w", err)
		}
		result = append(result, rr)
	}

	return result, total, nil
}

const employeeReportColumns = `er.report_id, er.batch_id, er.employee_id, er.employee_code,
	er.employee_name, er.department_name, er.position, er.status, er.hire_date,
	er.generated_by, er.generated_at`

func scanEmployeeReportRow(row pgx.Row) (report.EmployeeRow, error) {
	var rr report.EmployeeRow
	err := row.Scan(
		&rr.ReportID, &rr.BatchID, &rr.EmployeeID, &rr.EmployeeCode,
		&rr.EmployeeName, &rr.DepartmentName, &rr.Position, &rr.Status, &rr.HireDate,
		&rr.GeneratedBy, &rr.GeneratedAt,
	)
	return rr, err
}

func (r *snapshotRepository) ListEmployeeRows(ctx context.Context, f report.Filter, callerEmployeeID string, canSeeAll bool) ([]report.EmployeeRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate().ScopeEmployee("er.employee_id", callerEmployeeID, canSeeAll)
	if f.EmployeeID != nil {
		p.Where("er.employee_id = ?", *f.EmployeeID)
	}
	if f.DepartmentID != nil {
		p.Where("er.employee_id IN (SELECT id FROM employees WHERE department_id = ?)", *f.DepartmentID)
	}
	if f.Status != nil {
		p.Where("er.status = ?", *f.Status)
	}
	if f.StartDate != nil {
		p.Where("er.generated_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		p.Where("er.generated_at < ? + INTERVAL '1 day'", *f.EndDate)
	}

	total, err := listTotal(ctx, q, p, "employee_reports er")
	if err != nil {
		return nil, 0, err
	}

	pageSQL, args := p.PageSQL(employeeReportColumns, "employee_reports er", "er.report_id DESC", f.Page, f.Limit)
	rows, err := q.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employee report rows: %w", err)
	}
	defer rows.Close()

	var result []report.EmployeeRow
	for rows.Next() {
		rr, err := scanEmployeeReportRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee report row: %w", err)
		}
		result = append(result, rr)
	}

	return result, total, nil
}

const departmentReportColumns = `dr.report_id, dr.batch_id, dr.department_id, dr.department_name,
	dr.employee_count, dr.total_basic_salary, dr.generated_by, dr.generated_at`

func scanDepartmentReportRow(row pgx.Row) (report.DepartmentRow, error) {
	var rr report.DepartmentRow
	err := row.Scan(
		&rr.ReportID, &rr.BatchID, &rr.DepartmentID, &rr.DepartmentName,
		&rr.EmployeeCount, &rr.TotalBasicSalary, &rr.GeneratedBy, &rr.GeneratedAt,
	)
	return rr, err
}

func (r *snapshotRepository) ListDepartmentRows(ctx context.Context, f report.Filter) ([]report.DepartmentRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate()
	if f.DepartmentID != nil {
		p.Where("dr.department_id = ?", *f.DepartmentID)
	}
	if f.StartDate != nil {
		p.Where("dr.generated_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		p.Where("dr.generated_at < ? + INTERVAL '1 day'", *f.EndDate)
	}

	total, err := listTotal(ctx, q, p, "department_reports dr")
	if err != nil {
		return nil, 0, err
	}

	pageSQL, args := p.PageSQL(departmentReportColumns, "department_reports dr", "dr.report_id DESC", f.Page, f.Limit)
	rows, err := q.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list department report rows: %w", err)
	}
	defer rows.Close()

	var result []report.DepartmentRow
	for rows.Next() {
		rr, err := scanDepartmentReportRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan department report row: %w", err)
		}
		result = append(result, rr)
	}

	return result, total, nil
}

const deductionReportColumns = `dr.report_id, dr.batch_id, dr.employee_id, dr.employee_name,
	dr.deduction_name, dr.amount, dr.period_start, dr.period_end,
	dr.generated_by, dr.generated_at`

func scanDeductionReportRow(row pgx.Row) (report.DeductionRow, error) {
	var rr report.DeductionRow
	err := row.Scan(
		&rr.ReportID, &rr.BatchID, &rr.EmployeeID, &rr.EmployeeName,
		&rr.DeductionName, &rr.Amount, &rr.PeriodStart, &rr.PeriodEnd,
		&rr.GeneratedBy, &rr.GeneratedAt,
	)
	return rr, err
}

func (r *snapshotRepository) ListDeductionRows(ctx context.Context, f report.Filter, callerEmployeeID string, canSeeAll bool) ([]report.DeductionRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate().ScopeEmployee("dr.employee_id", callerEmployeeID, canSeeAll)
	if f.EmployeeID != nil {
		p.Where("dr.employee_id = ?", *f.EmployeeID)
	}
	if f.DepartmentID != nil {
		p.Where("dr.employee_id IN (SELECT id FROM employees WHERE department_id = ?)", *f.DepartmentID)
	}
	if f.StartDate != nil {
		p.Where("dr.period_start >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		p.Where("dr.period_end <= ?", *f.EndDate)
	}

	total, err := listTotal(ctx, q, p, "deduction_reports dr")
	if err != nil {
		return nil, 0, err
	}

	pageSQL, args := p.PageSQL(deductionReportColumns, "deduction_reports dr", "dr.report_id DESC", f.Page, f.Limit)
	rows, err := q.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deduction report rows: %w", err)
	}
	defer rows.Close()

	var result []report.DeductionRow
	for rows.Next() {
		rr, err := scanDeductionReportRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan deduction report row: %w", err)
		}
		result = append(result, rr)
	}

	return result, total, nil
}

// ========== SINGLE ROW GETS ==========

func (r *snapshotRepository) GetPayrollRow(ctx context.Context, reportID int64, callerEmployeeID string, canSeeAll bool) (report.PayrollRow, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate().
		Where("pr.report_id = ?", reportID).
		ScopeEmployee("pr.employee_id", callerEmployeeID, canSeeAll)

	query, args := p.PageSQL(payrollReportColumns, "payroll_reports pr", "pr.report_id DESC", 1, 1)
	rr, err := scanPayrollReportRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.PayrollRow{}, report.ErrRowNotFound
		}
		return report.PayrollRow{}, fmt.Errorf("failed to get payroll report row: %w", err)
	}
	return rr, nil
}

func (r *snapshotRepository) GetAttendanceRow(ctx context.Context, reportID int64, callerEmployeeID string, canSeeAll bool) (report.AttendanceRow, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate().
		Where("ar.report_id = ?", reportID).
		ScopeEmployee("ar.employee_id", callerEmployeeID, canSeeAll)

	query, args := p.PageSQL(attendanceReportColumns, "attendance_reports ar", "ar.report_id DESC", 1, 1)
	rr, err := scanAttendanceReportRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.AttendanceRow{}, report.ErrRowNotFound
		}
		return report.AttendanceRow{}, fmt.Errorf("failed to get attendance report row: %w", err)
	}
	return rr, nil
}

func (r *snapshotRepository) GetEmployeeRow(ctx context.Context, reportID int64, callerEmployeeID string, canSeeAll bool) (report.EmployeeRow, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate().
		Where("er.report_id = ?", reportID).
		ScopeEmployee("er.employee_id", callerEmployeeID, canSeeAll)

	query, args := p.PageSQL(employeeReportColumns, "employee_reports er", "er.report_id DESC", 1, 1)
	rr, err := scanEmployeeReportRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.EmployeeRow{}, report.ErrRowNotFound
		}
		return report.EmployeeRow{}, fmt.Errorf("failed to get employee report row: %w", err)
	}
	return rr, nil
}

func (r *snapshotRepository) GetDepartmentRow(ctx context.Context, reportID int64) (report.DepartmentRow, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate().Where("dr.report_id = ?", reportID)

	query, args := p.PageSQL(departmentReportColumns, "department_reports dr", "dr.report_id DESC", 1, 1)
	rr, err := scanDepartmentReportRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.DepartmentRow{}, report.ErrRowNotFound
		}
		return report.DepartmentRow{}, fmt.Errorf("failed to get department report row: %w", err)
	}
	return rr, nil
}

func (r *snapshotRepository) GetDeductionRow(ctx context.Context, reportID int64, callerEmployeeID string, canSeeAll bool) (report.DeductionRow, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate().
		Where("dr.report_id = ?", reportID).
		ScopeEmployee("dr.employee_id", callerEmployeeID, canSeeAll)

	query, args := p.PageSQL(deductionReportColumns, "deduction_reports dr", "dr.report_id DESC", 1, 1)
	rr, err := scanDeductionReportRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.DeductionRow{}, report.ErrRowNotFound
		}
		return report.DeductionRow{}, fmt.Errorf("failed to get deduction report row: %w", err)
	}
	return rr, nil
}

// ========== LIVE AGGREGATES ==========

func (r *snapshotRepository) GetDepartmentAggregates(ctx context.Context) ([]report.DepartmentAggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name,
			   COUNT(e.id) FILTER (WHERE e.status = 'active' AND e.deleted_at IS NULL),
			   COALESCE(SUM(cp.basic_salary) FILTER (WHERE e.status = 'active' AND e.deleted_at IS NULL), 0)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		LEFT JOIN compensation_profiles cp ON cp.employee_id = e.id
		GROUP BY d.id, d.name
		ORDER BY d.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query department aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []report.DepartmentAggregate
	for rows.Next() {
		var a report.DepartmentAggregate
		if err := rows.Scan(&a.DepartmentID, &a.DepartmentName, &a.EmployeeCount, &a.TotalBasicSalary); err != nil {
			return nil, fmt.Errorf("failed to scan department aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}

	return aggs, nil
}
