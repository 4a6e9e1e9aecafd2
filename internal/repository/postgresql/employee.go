package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.department_id, e.employee_code, e.full_name, e.position, e.status,
	e.hire_date, e.created_at, e.updated_at, e.deleted_at, d.name as department_name
`

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.DepartmentID, &e.EmployeeCode, &e.FullName, &e.Position, &e.Status,
		&e.HireDate, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt, &e.DepartmentName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE e.status = 'active' AND e.deleted_at IS NULL
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.DepartmentID, &e.EmployeeCode, &e.FullName, &e.Position, &e.Status,
			&e.HireDate, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt, &e.DepartmentName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}

func (r *employeeRepository) GetCompensationProfile(ctx context.Context, employeeID string) (employee.CompensationProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, basic_salary, salary_rate_type, work_hours_per_day,
			   lunch_hours_per_day, overtime_multiplier
		FROM compensation_profiles
		WHERE employee_id = $1
	`

	var p employee.CompensationProfile
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&p.EmployeeID, &p.BasicSalary, &p.SalaryRateType, &p.WorkHoursPerDay,
		&p.LunchHoursPerDay, &p.OvertimeMultiplier,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.CompensationProfile{}, employee.ErrCompensationProfileNotFound
		}
		return employee.CompensationProfile{}, fmt.Errorf("failed to get compensation profile: %w", err)
	}

	return p, nil
}
