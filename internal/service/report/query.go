package report

import (
	"context"

	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
)

// List returns one page of snapshot rows for a family, newest first. The
// payroll family transparently falls back to live payroll records when no
// snapshot has been generated yet, under the same scope and pagination rules.
func (s *Service) List(ctx context.Context, caller auth.Caller, typ report.Type, req report.ListRequest) (report.ListResult, error) {
	if err := req.Validate(); err != nil {
		return report.ListResult{}, err
	}
	return s.listFiltered(ctx, caller, typ, req.ToFilter())
}

func (s *Service) listFiltered(ctx context.Context, caller auth.Caller, typ report.Type, f report.Filter) (report.ListResult, error) {
	switch typ {
	case report.TypePayroll:
		rows, total, err := s.snapshotRepo.ListPayrollRows(ctx, f, caller.EmployeeID, caller.CanSeeAll())
		if err != nil {
			return report.ListResult{}, err
		}
		if total == 0 {
			return s.listLivePayroll(ctx, caller, f)
		}
		return pageOf(nonNil(rows), total, f), nil

	case report.TypeAttendance:
		rows, total, err := s.snapshotRepo.ListAttendanceRows(ctx, f, caller.EmployeeID, caller.CanSeeAll())
		if err != nil {
			return report.ListResult{}, err
		}
		return pageOf(nonNil(rows), total, f), nil

	case report.TypeEmployee:
		rows, total, err := s.snapshotRepo.ListEmployeeRows(ctx, f, caller.EmployeeID, caller.CanSeeAll())
		if err != nil {
			return report.ListResult{}, err
		}
		return pageOf(nonNil(rows), total, f), nil

	case report.TypeDepartment:
		// Department rows carry org-wide salary totals and no employee id to
		// scope by, so they are visible to HR and admin only.
		if !caller.CanSeeAll() {
			return report.ListResult{}, auth.ErrHRAccessRequired
		}
		rows, total, err := s.snapshotRepo.ListDepartmentRows(ctx, f)
		if err != nil {
			return report.ListResult{}, err
		}
		return pageOf(nonNil(rows), total, f), nil

	case report.TypeDeduction:
		rows, total, err := s.snapshotRepo.ListDeductionRows(ctx, f, caller.EmployeeID, caller.CanSeeAll())
		if err != nil {
			return report.ListResult{}, err
		}
		return pageOf(nonNil(rows), total, f), nil
	}

	return report.ListResult{}, report.ErrUnknownType
}

// listLivePayroll serves the payroll list from the operational table when no
// snapshot exists, preserving scope and pagination.
func (s *Service) listLivePayroll(ctx context.Context, caller auth.Caller, f report.Filter) (report.ListResult, error) {
	filter := payroll.Filter{
		EmployeeID:  f.EmployeeID,
		Status:      f.Status,
		PeriodStart: f.StartDate,
		PeriodEnd:   f.EndDate,
		Page:        f.Page,
		Limit:       f.Limit,
	}

	records, total, err := s.payrollRepo.List(ctx, filter, caller.EmployeeID, caller.CanSeeAll())
	if err != nil {
		return report.ListResult{}, err
	}

	items := make([]report.PayrollRow, 0, len(records))
	for _, rec := range records {
		name := rec.EmployeeID
		if rec.EmployeeName != nil {
			name = *rec.EmployeeName
		}
		items = append(items, report.PayrollRow{
			PayrollID:       rec.ID,
			EmployeeID:      rec.EmployeeID,
			EmployeeName:    name,
			DepartmentName:  rec.DepartmentName,
			PeriodStart:     rec.PeriodStart,
			PeriodEnd:       rec.PeriodEnd,
			BasicSalary:     rec.BasicSalary,
			OvertimePay:     rec.OvertimePay,
			TotalDeductions: rec.TotalDeductions,
			NetPay:          rec.NetPay,
			Status:          string(rec.Status),
			GeneratedBy:     rec.GeneratedBy,
			GeneratedAt:     rec.GeneratedAt,
		})
	}

	return pageOf(items, total, f), nil
}

// Get returns one snapshot row. Callers outside the HR roles only see rows
// belonging to their own employee id.
func (s *Service) Get(ctx context.Context, caller auth.Caller, typ report.Type, reportID int64) (interface{}, error) {
	switch typ {
	case report.TypePayroll:
		return s.snapshotRepo.GetPayrollRow(ctx, reportID, caller.EmployeeID, caller.CanSeeAll())
	case report.TypeAttendance:
		return s.snapshotRepo.GetAttendanceRow(ctx, reportID, caller.EmployeeID, caller.CanSeeAll())
	case report.TypeEmployee:
		return s.snapshotRepo.GetEmployeeRow(ctx, reportID, caller.EmployeeID, caller.CanSeeAll())
	case report.TypeDepartment:
		if !caller.CanSeeAll() {
			return nil, auth.ErrHRAccessRequired
		}
		return s.snapshotRepo.GetDepartmentRow(ctx, reportID)
	case report.TypeDeduction:
		return s.snapshotRepo.GetDeductionRow(ctx, reportID, caller.EmployeeID, caller.CanSeeAll())
	}
	return nil, report.ErrUnknownType
}

func pageOf(items interface{}, total int64, f report.Filter) report.ListResult {
	return report.ListResult{
		Items: items,
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}
}

// nonNil keeps empty pages serializing as [] instead of null.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
