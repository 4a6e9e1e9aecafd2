package deduction

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/deduction"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	payrollsvc "github.com/suweldo/payroll-backend-go/internal/service/payroll"
)

type fakePayrollRepo struct {
	payroll.RecordRepository
	records []payroll.Record
}

func (f *fakePayrollRepo) ListByPeriod(_ context.Context, _, _ *time.Time, employeeID string) ([]payroll.Record, error) {
	if employeeID == "" {
		return f.records, nil
	}
	var out []payroll.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCatalogRepo struct {
	types    []deduction.Type
	mappings []deduction.EmployeeDeduction
}

func (f *fakeCatalogRepo) ListTypes(context.Context) ([]deduction.Type, error) {
	return f.types, nil
}

func (f *fakeCatalogRepo) ListEmployeeDeductions(context.Context) ([]deduction.EmployeeDeduction, error) {
	return f.mappings, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	profiles  map[string]employee.CompensationProfile
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) GetCompensationProfile(_ context.Context, employeeID string) (employee.CompensationProfile, error) {
	p, ok := f.profiles[employeeID]
	if !ok {
		return employee.CompensationProfile{}, employee.ErrCompensationProfileNotFound
	}
	return p, nil
}

func testDistributor(payrollRepo *fakePayrollRepo, catalogRepo *fakeCatalogRepo, employeeRepo *fakeEmployeeRepo) *Distributor {
	return NewDistributor(payrollRepo, catalogRepo, employeeRepo, payrollsvc.NewTrainLawEstimator(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testCatalog() []deduction.Type {
	return []deduction.Type{
		{ID: "t1", Name: "SSS Contribution", Tag: deduction.TagSSS},
		{ID: "t2", Name: "PhilHealth", Tag: deduction.TagPhilHealth},
	}
}

func TestDistributor_EmptyCatalog(t *testing.T) {
	d := testDistributor(&fakePayrollRepo{}, &fakeCatalogRepo{}, &fakeEmployeeRepo{})

	_, err := d.Allocate(context.Background(), nil, nil, nil)
	assert.ErrorIs(t, err, deduction.ErrEmptyCatalog)
}

func TestDistributor_PayrollTierWins(t *testing.T) {
	name := "Ana Cruz"
	payrollRepo := &fakePayrollRepo{records: []payroll.Record{
		{EmployeeID: "e1", EmployeeName: &name, TotalDeductions: decimal.NewFromInt(1500)},
	}}
	catalogRepo := &fakeCatalogRepo{
		types: testCatalog(),
		// mappings exist but must never be consulted
		mappings: []deduction.EmployeeDeduction{{EmployeeID: "e2", TypeID: "t1", Amount: decimal.NewFromInt(999)}},
	}
	employeeRepo := &fakeEmployeeRepo{profiles: map[string]employee.CompensationProfile{
		"e1": {EmployeeID: "e1", BasicSalary: decimal.NewFromInt(20000)},
	}}

	rows, err := testDistributor(payrollRepo, catalogRepo, employeeRepo).Allocate(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "e1", rows[0].EmployeeID)
	assert.Equal(t, "Ana Cruz", rows[0].EmployeeName)
	assert.Equal(t, "SSS Contribution", rows[0].DeductionName)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(900)), "got %s", rows[0].Amount) // 4.5% of 20000
	assert.True(t, rows[1].Amount.Equal(decimal.NewFromInt(500)))           // 2.5% of 20000
}

func TestDistributor_ZeroDeductionPayrollFallsToMappings(t *testing.T) {
	payrollRepo := &fakePayrollRepo{records: []payroll.Record{
		{EmployeeID: "e1", TotalDeductions: decimal.Zero},
	}}
	typeName := "SSS Contribution"
	catalogRepo := &fakeCatalogRepo{
		types: testCatalog(),
		mappings: []deduction.EmployeeDeduction{
			{EmployeeID: "e1", TypeID: "t1", TypeName: &typeName, Amount: decimal.NewFromInt(450)},
		},
	}
	employeeRepo := &fakeEmployeeRepo{
		employees: []employee.Employee{{ID: "e1", FullName: "Ana Cruz"}},
	}

	rows, err := testDistributor(payrollRepo, catalogRepo, employeeRepo).Allocate(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "SSS Contribution", rows[0].DeductionName)
	assert.Equal(t, "Ana Cruz", rows[0].EmployeeName)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(450)))
}

func TestDistributor_SynthesizesWhenNothingElseExists(t *testing.T) {
	catalogRepo := &fakeCatalogRepo{types: []deduction.Type{
		{ID: "t1", Name: "SSS Contribution", Tag: deduction.TagSSS},
		{ID: "t2", Name: "PhilHealth", Tag: deduction.TagPhilHealth},
		{ID: "t3", Name: "Pag-IBIG", Tag: deduction.TagPagIbig},
		{ID: "t4", Name: "Withholding Tax", Tag: deduction.TagWithholding},
		{ID: "t5", Name: "Company Loan", Tag: deduction.TagOther, DefaultAmount: decimal.NewFromInt(500)},
		{ID: "t6", Name: "Uniform Fee", Tag: deduction.TagOther, DefaultAmount: decimal.NewFromInt(50)},
	}}
	employeeRepo := &fakeEmployeeRepo{
		employees: []employee.Employee{
			{ID: "e1", FullName: "Ana Cruz"},
			{ID: "e2", FullName: "Ben Reyes"}, // no profile, skipped
		},
		profiles: map[string]employee.CompensationProfile{
			"e1": {EmployeeID: "e1", BasicSalary: decimal.NewFromInt(10000)},
		},
	}

	rows, err := testDistributor(&fakePayrollRepo{}, catalogRepo, employeeRepo).Allocate(context.Background(), nil, nil, nil)
	require.NoError(t, err)

	// first 5 catalog types only, one employee with a profile
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.Equal(t, "e1", r.EmployeeID)
		assert.NotEqual(t, "Uniform Fee", r.DeductionName)
	}
	// other tier uses the catalog default when no lump exists
	assert.True(t, rows[4].Amount.Equal(decimal.NewFromInt(500)))
}
