package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
)

type fakeRecordRepo struct {
	payroll.RecordRepository

	records        []payroll.Record
	lastEmployeeID string
}

func (f *fakeRecordRepo) ListByPeriod(_ context.Context, _, _ *time.Time, employeeID string) ([]payroll.Record, error) {
	f.lastEmployeeID = employeeID
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

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestSummaryTotalsAcrossRecords(t *testing.T) {
	repo := &fakeRecordRepo{records: []payroll.Record{
		{EmployeeID: "e1", BasicSalary: dec("26000"), OvertimePay: dec("156.25"), TotalDeductions: dec("62.50"), NetPay: dec("26093.75"), Status: payroll.StatusProcessed},
		{EmployeeID: "e2", BasicSalary: dec("14000"), OvertimePay: dec("0"), TotalDeductions: dec("500"), NetPay: dec("13500"), Status: payroll.StatusPaid},
	}}
	svc := NewService(repo, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	hr := auth.Caller{UserID: "u1", Role: auth.RoleHR}
	got, err := svc.Summary(context.Background(), hr, payroll.SummaryQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2, got.RecordCount)
	assert.True(t, got.TotalBasicSalary.Equal(dec("40000")), "basic %s", got.TotalBasicSalary)
	assert.True(t, got.TotalOvertimePay.Equal(dec("156.25")), "overtime %s", got.TotalOvertimePay)
	assert.True(t, got.TotalDeductions.Equal(dec("562.50")), "deductions %s", got.TotalDeductions)
	assert.True(t, got.TotalNetPay.Equal(dec("39593.75")), "net %s", got.TotalNetPay)
	assert.Equal(t, int64(1), got.ByStatus["processed"])
	assert.Equal(t, int64(1), got.ByStatus["paid"])
}

func TestSummaryScopesNonPrivilegedCaller(t *testing.T) {
	repo := &fakeRecordRepo{records: []payroll.Record{
		{EmployeeID: "e1", BasicSalary: dec("26000"), NetPay: dec("26000"), Status: payroll.StatusProcessed},
		{EmployeeID: "e2", BasicSalary: dec("14000"), NetPay: dec("14000"), Status: payroll.StatusProcessed},
	}}
	svc := NewService(repo, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	me := auth.Caller{UserID: "u2", EmployeeID: "e2", Role: auth.RoleEmployee}
	got, err := svc.Summary(context.Background(), me, payroll.SummaryQuery{EmployeeID: "e1"})
	require.NoError(t, err)

	// The requested employee_id is overridden by the caller's own scope.
	assert.Equal(t, "e2", repo.lastEmployeeID)
	assert.Equal(t, 1, got.RecordCount)
	assert.True(t, got.TotalBasicSalary.Equal(dec("14000")))
}

func TestSummaryRejectsInvertedPeriod(t *testing.T) {
	svc := NewService(&fakeRecordRepo{}, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	hr := auth.Caller{UserID: "u1", Role: auth.RoleHR}
	_, err := svc.Summary(context.Background(), hr, payroll.SummaryQuery{
		StartDate: "2025-02-01",
		EndDate:   "2025-01-01",
	})
	assert.Error(t, err)
}

func TestUpdateStatusRejectsNonPaidTarget(t *testing.T) {
	svc := NewService(&fakeRecordRepo{}, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := svc.UpdateStatus(context.Background(), payroll.UpdateStatusRequest{ID: "p1", Status: "processed"})
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)
}
