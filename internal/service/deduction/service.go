package deduction

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/deduction"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	payrollsvc "github.com/suweldo/payroll-backend-go/internal/service/payroll"
)

// synthesizedTypeLimit caps how many catalog types the last-resort tier
// fabricates per employee.
const synthesizedTypeLimit = 5

// AllocatedRow - one employee/deduction-type amount produced by the
// distributor, before it is frozen into a snapshot.
type AllocatedRow struct {
	EmployeeID    string
	EmployeeName  string
	DeductionName string
	Amount        decimal.Decimal
}

// Distributor turns sparse deduction source data into per-employee,
// per-type amounts. Three tiers, each tried only when the previous one
// produced nothing:
//
//  1. payroll records in the period carrying deductions
//  2. explicit employee-to-deduction-type mappings
//  3. synthesized rows for every active employee across the first
//     catalog types
type Distributor struct {
	payrollRepo  payroll.RecordRepository
	catalogRepo  deduction.CatalogRepository
	employeeRepo employee.EmployeeRepository
	estimator    payrollsvc.TaxEstimator
	logger       *slog.Logger
}

func NewDistributor(
	payrollRepo payroll.RecordRepository,
	catalogRepo deduction.CatalogRepository,
	employeeRepo employee.EmployeeRepository,
	estimator payrollsvc.TaxEstimator,
	logger *slog.Logger,
) *Distributor {
	return &Distributor{
		payrollRepo:  payrollRepo,
		catalogRepo:  catalogRepo,
		employeeRepo: employeeRepo,
		estimator:    estimator,
		logger:       logger,
	}
}

// Allocate produces the deduction rows for the given scope. The tier order is
// part of the contract: callers report the row count, so a later tier must
// never run once an earlier one has produced rows.
func (d *Distributor) Allocate(ctx context.Context, start, end *time.Time, employeeID *string) ([]AllocatedRow, error) {
	types, err := d.catalogRepo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, deduction.ErrEmptyCatalog
	}

	rows, err := d.fromPayroll(ctx, types, start, end, employeeID)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	rows, err = d.fromMappings(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	return d.synthesize(ctx, types, employeeID)
}

// fromPayroll allocates each payroll record's deduction lump across the
// catalog using the percentage rules.
func (d *Distributor) fromPayroll(ctx context.Context, types []deduction.Type, start, end *time.Time, employeeID *string) ([]AllocatedRow, error) {
	scope := ""
	if employeeID != nil {
		scope = *employeeID
	}
	records, err := d.payrollRepo.ListByPeriod(ctx, start, end, scope)
	if err != nil {
		return nil, err
	}

	var rows []AllocatedRow
	for _, rec := range records {
		if rec.TotalDeductions.Sign() <= 0 {
			continue
		}

		profile, err := d.employeeRepo.GetCompensationProfile(ctx, rec.EmployeeID)
		if err != nil {
			d.logger.Warn("deduction distribution skipped payroll record",
				slog.String("employee_id", rec.EmployeeID),
				slog.String("error", err.Error()),
			)
			continue
		}

		name := rec.EmployeeID
		if rec.EmployeeName != nil {
			name = *rec.EmployeeName
		}
		for _, t := range types {
			rows = append(rows, AllocatedRow{
				EmployeeID:    rec.EmployeeID,
				EmployeeName:  name,
				DeductionName: t.Name,
				Amount:        AllocateAmount(t.EffectiveTag(), profile.BasicSalary, rec.TotalDeductions, t.DefaultAmount, d.estimator),
			})
		}
	}

	return rows, nil
}

// fromMappings emits one row per explicit employee-deduction mapping with its
// agreed amount.
func (d *Distributor) fromMappings(ctx context.Context, employeeID *string) ([]AllocatedRow, error) {
	mappings, err := d.catalogRepo.ListEmployeeDeductions(ctx)
	if err != nil {
		return nil, err
	}

	var rows []AllocatedRow
	for _, m := range mappings {
		if employeeID != nil && m.EmployeeID != *employeeID {
			continue
		}

		typeName := m.TypeID
		if m.TypeName != nil {
			typeName = *m.TypeName
		}

		name := m.EmployeeID
		if emp, err := d.employeeRepo.GetByID(ctx, m.EmployeeID); err == nil {
			name = emp.FullName
		}

		rows = append(rows, AllocatedRow{
			EmployeeID:    m.EmployeeID,
			EmployeeName:  name,
			DeductionName: typeName,
			Amount:        m.Amount,
		})
	}

	return rows, nil
}

// synthesize fabricates rows for every active employee across the first
// catalog types using the same percentage rules, with no lump available.
func (d *Distributor) synthesize(ctx context.Context, types []deduction.Type, employeeID *string) ([]AllocatedRow, error) {
	employees, err := d.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if len(types) > synthesizedTypeLimit {
		types = types[:synthesizedTypeLimit]
	}

	var rows []AllocatedRow
	for _, emp := range employees {
		if employeeID != nil && emp.ID != *employeeID {
			continue
		}

		profile, err := d.employeeRepo.GetCompensationProfile(ctx, emp.ID)
		if err != nil {
			d.logger.Warn("deduction distribution skipped employee",
				slog.String("employee_id", emp.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, t := range types {
			rows = append(rows, AllocatedRow{
				EmployeeID:    emp.ID,
				EmployeeName:  emp.FullName,
				DeductionName: t.Name,
				Amount:        AllocateAmount(t.EffectiveTag(), profile.BasicSalary, decimal.Zero, t.DefaultAmount, d.estimator),
			})
		}
	}

	return rows, nil
}
