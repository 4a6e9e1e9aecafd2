package postgresql

import (
	"context"
	"fmt"

	"github.com/suweldo/payroll-backend-go/internal/domain/deduction"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) deduction.CatalogRepository {
	return &deductionRepository{db: db}
}

func (r *deductionRepository) ListTypes(ctx context.Context) ([]deduction.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, COALESCE(kind, ''), default_amount, created_at
		FROM deduction_types
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction types: %w", err)
	}
	defer rows.Close()

	var types []deduction.Type
	for rows.Next() {
		var t deduction.Type
		if err := rows.Scan(&t.ID, &t.Name, &t.Tag, &t.DefaultAmount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deduction type: %w", err)
		}
		types = append(types, t)
	}

	return types, nil
}

func (r *deductionRepository) ListEmployeeDeductions(ctx context.Context) ([]deduction.EmployeeDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ed.id, ed.employee_id, ed.deduction_type_id, ed.amount, ed.created_at,
			   dt.name
		FROM employee_deductions ed
		JOIN deduction_types dt ON ed.deduction_type_id = dt.id
		ORDER BY ed.employee_id, dt.created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee deductions: %w", err)
	}
	defer rows.Close()

	var mappings []deduction.EmployeeDeduction
	for rows.Next() {
		var m deduction.EmployeeDeduction
		if err := rows.Scan(&m.ID, &m.EmployeeID, &m.TypeID, &m.Amount, &m.CreatedAt, &m.TypeName); err != nil {
			return nil, fmt.Errorf("failed to scan employee deduction: %w", err)
		}
		mappings = append(mappings, m)
	}

	return mappings, nil
}
