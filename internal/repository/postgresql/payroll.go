package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.RecordRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	pr.id, pr.employee_id, pr.period_start, pr.period_end, pr.basic_salary,
	pr.overtime_pay, pr.total_deductions, pr.net_pay, pr.deduction_detail,
	pr.status, pr.generated_by, pr.generated_at, pr.archived, pr.created_at, pr.updated_at
`

func scanRecord(row pgx.Row, withJoins bool) (payroll.Record, error) {
	var rec payroll.Record
	var detailBytes []byte

	dest := []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd, &rec.BasicSalary,
		&rec.OvertimePay, &rec.TotalDeductions, &rec.NetPay, &detailBytes,
		&rec.Status, &rec.GeneratedBy, &rec.GeneratedAt, &rec.Archived, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if withJoins {
		dest = append(dest, &rec.EmployeeName, &rec.DepartmentName)
	}

	if err := row.Scan(dest...); err != nil {
		return payroll.Record{}, err
	}
	_ = json.Unmarshal(detailBytes, &rec.DeductionDetail)
	return rec, nil
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	detailJSON, _ := json.Marshal(record.DeductionDetail)

	query := `
		INSERT INTO payroll_records (
			employee_id, period_start, period_end, basic_salary, overtime_pay,
			total_deductions, net_pay, deduction_detail, status, generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, employee_id, period_start, period_end, basic_salary,
			overtime_pay, total_deductions, net_pay, deduction_detail,
			status, generated_by, generated_at, archived, created_at, updated_at
	`

	rec, err := scanRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodStart, record.PeriodEnd, record.BasicSalary,
		record.OvertimePay, record.TotalDeductions, record.NetPay, detailJSON,
		record.Status, record.GeneratedBy,
	), false)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.Record{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, e.full_name, d.name
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE pr.id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, e.full_name, d.name
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE pr.employee_id = $1 AND pr.period_start = $2 AND pr.period_end = $3
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, start, end), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter, callerEmployeeID string, canSeeAll bool) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	from := `payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		LEFT JOIN departments d ON e.department_id = d.id`

	p := NewPredicate().
		ScopeEmployee("pr.employee_id", callerEmployeeID, canSeeAll).
		WhereIf(!filter.IncludeArchived, "pr.archived = ?", false)
	if filter.EmployeeID != nil {
		p.Where("pr.employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		p.Where("pr.status = ?", *filter.Status)
	}
	if filter.PeriodStart != nil {
		p.Where("pr.period_start >= ?", *filter.PeriodStart)
	}
	if filter.PeriodEnd != nil {
		p.Where("pr.period_end <= ?", *filter.PeriodEnd)
	}

	countSQL, countArgs := p.CountSQL(from)
	var totalCount int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	pageSQL, pageArgs := p.PageSQL(payrollColumns+", e.full_name, d.name", from, "pr.created_at DESC, pr.id DESC", page, limit)

	rows, err := q.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) ListByPeriod(ctx context.Context, start, end *time.Time, employeeID string) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	p := NewPredicate().Where("pr.archived = ?", false)
	if start != nil {
		p.Where("pr.period_start >= ?", *start)
	}
	if end != nil {
		p.Where("pr.period_end <= ?", *end)
	}
	if employeeID != "" {
		p.Where("pr.employee_id = ?", employeeID)
	}

	from := `payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		LEFT JOIN departments d ON e.department_id = d.id`
	// Unpaginated on purpose; generation scans the whole period.
	query, args := p.PageSQL(payrollColumns+", e.full_name, d.name", from, "pr.id", 1, 100000)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records for period: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, from, to payroll.Status) error {
	q := GetQuerier(ctx, r.db)

	// The from-status guard in the WHERE clause makes the transition atomic;
	// a concurrent update loses and surfaces as not-found-or-transitioned.
	query := `
		UPDATE payroll_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, to, id, from).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish a missing record from a blocked transition.
			var exists bool
			if chkErr := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payroll_records WHERE id = $1)`, id).Scan(&exists); chkErr == nil && !exists {
				return payroll.ErrRecordNotFound
			}
			return payroll.ErrInvalidStatusTransition
		}
		return fmt.Errorf("failed to update payroll status: %w", err)
	}

	return nil
}

func (r *payrollRepository) SetArchived(ctx context.Context, ids []string, archived bool) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET archived = $1, updated_at = NOW()
		WHERE id = ANY($2)
	`

	tag, err := q.Exec(ctx, query, archived, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to set archived flag: %w", err)
	}

	return tag.RowsAffected(), nil
}
