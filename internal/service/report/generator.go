package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
	attendancesvc "github.com/suweldo/payroll-backend-go/internal/service/attendance"
	deductionsvc "github.com/suweldo/payroll-backend-go/internal/service/deduction"
)

// TxRunner serializes the delete-then-insert regeneration of the deduction
// family. postgresql.LockedTxRunner is the production implementation.
type TxRunner interface {
	RunSerialized(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

type Service struct {
	tx           TxRunner
	snapshotRepo report.SnapshotRepository
	payrollRepo  payroll.RecordRepository
	employeeRepo employee.EmployeeRepository
	eventRepo    attendance.EventRepository
	userRepo     auth.UserRepository
	distributor  *deductionsvc.Distributor
	logger       *slog.Logger
}

func NewService(
	tx TxRunner,
	snapshotRepo report.SnapshotRepository,
	payrollRepo payroll.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	eventRepo attendance.EventRepository,
	userRepo auth.UserRepository,
	distributor *deductionsvc.Distributor,
	logger *slog.Logger,
) *Service {
	return &Service{
		tx:           tx,
		snapshotRepo: snapshotRepo,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		distributor:  distributor,
		logger:       logger,
	}
}

// Generate freezes the current source data of one report family into snapshot
// rows and returns how many were written. Four families append; the deduction
// family first deletes prior rows matching the same scope so regeneration is
// idempotent.
func (s *Service) Generate(ctx context.Context, caller auth.Caller, typ report.Type, req report.GenerateRequest) (report.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return report.GenerateResponse{}, err
	}

	scope := req.Scope()
	if !caller.CanSeeAll() {
		scope.EmployeeID = &caller.EmployeeID
	}

	batchID := uuid.NewString()
	generatedAt := time.Now()

	var (
		inserted int
		err      error
	)
	switch typ {
	case report.TypePayroll:
		inserted, err = s.generatePayroll(ctx, caller, scope, batchID, generatedAt)
	case report.TypeAttendance:
		inserted, err = s.generateAttendance(ctx, caller, scope, batchID, generatedAt)
	case report.TypeEmployee:
		inserted, err = s.generateEmployee(ctx, caller, scope, batchID, generatedAt)
	case report.TypeDepartment:
		inserted, err = s.generateDepartment(ctx, caller, scope, batchID, generatedAt)
	case report.TypeDeduction:
		inserted, err = s.generateDeduction(ctx, caller, scope, batchID, generatedAt)
	default:
		return report.GenerateResponse{}, report.ErrUnknownType
	}
	if err != nil {
		// The root cause stays in the logs; the HTTP layer only surfaces a
		// generic message for generation failures.
		s.logger.Error("report generation failed",
			slog.String("type", string(typ)),
			slog.String("batch_id", batchID),
			slog.String("error", err.Error()),
		)
		return report.GenerateResponse{}, err
	}

	s.logger.Info("report snapshot generated",
		slog.String("type", string(typ)),
		slog.String("batch_id", batchID),
		slog.Int("inserted", inserted),
	)
	return report.GenerateResponse{Inserted: inserted}, nil
}

func (s *Service) generatePayroll(ctx context.Context, caller auth.Caller, scope report.Filter, batchID string, generatedAt time.Time) (int, error) {
	employeeID := ""
	if scope.EmployeeID != nil {
		employeeID = *scope.EmployeeID
	}
	records, err := s.payrollRepo.ListByPeriod(ctx, scope.StartDate, scope.EndDate, employeeID)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, rec := range records {
		name := rec.EmployeeID
		if rec.EmployeeName != nil {
			name = *rec.EmployeeName
		}
		row := report.PayrollRow{
			BatchID:         batchID,
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
			GeneratedBy:     &caller.UserID,
			GeneratedAt:     generatedAt,
		}
		if err := s.snapshotRepo.InsertPayrollRow(ctx, row); err != nil {
			s.logger.Warn("payroll snapshot row skipped",
				slog.String("payroll_id", rec.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		inserted++
	}

	return inserted, nil
}

func (s *Service) generateAttendance(ctx context.Context, caller auth.Caller, scope report.Filter, batchID string, generatedAt time.Time) (int, error) {
	start, end := periodOrCurrentMonth(scope, generatedAt)

	employeeID := ""
	if scope.EmployeeID != nil {
		employeeID = *scope.EmployeeID
	}
	events, err := s.eventRepo.GetEventsInRange(ctx, employeeID, start, end)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, sum := range attendancesvc.FoldEvents(events) {
		emp, err := s.employeeRepo.GetByID(ctx, sum.EmployeeID)
		if err != nil {
			s.logger.Warn("attendance snapshot row skipped",
				slog.String("employee_id", sum.EmployeeID),
				slog.String("error", err.Error()),
			)
			continue
		}

		row := report.AttendanceRow{
			BatchID:        batchID,
			EmployeeID:     emp.ID,
			EmployeeName:   emp.FullName,
			DepartmentName: emp.DepartmentName,
			PeriodStart:    start,
			PeriodEnd:      end,
			PresentDays:    sum.PresentDays,
			AbsentDays:     sum.AbsentDays,
			LeaveDays:      sum.LeaveDays,
			LateDays:       sum.LateDays,
			TotalHours:     sum.TotalHoursWorked,
			GeneratedBy:    &caller.UserID,
			GeneratedAt:    generatedAt,
		}
		if err := s.snapshotRepo.InsertAttendanceRow(ctx, row); err != nil {
			s.logger.Warn("attendance snapshot row skipped",
				slog.String("employee_id", emp.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		inserted++
	}

	return inserted, nil
}

func (s *Service) generateEmployee(ctx context.Context, caller auth.Caller, scope report.Filter, batchID string, generatedAt time.Time) (int, error) {
	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, emp := range employees {
		if scope.EmployeeID != nil && emp.ID != *scope.EmployeeID {
			continue
		}
		if scope.DepartmentID != nil && (emp.DepartmentID == nil || *emp.DepartmentID != *scope.DepartmentID) {
			continue
		}

		row := report.EmployeeRow{
			BatchID:        batchID,
			EmployeeID:     emp.ID,
			EmployeeCode:   emp.EmployeeCode,
			EmployeeName:   emp.FullName,
			DepartmentName: emp.DepartmentName,
			Position:       emp.Position,
			Status:         string(emp.Status),
			HireDate:       emp.HireDate,
			GeneratedBy:    &caller.UserID,
			GeneratedAt:    generatedAt,
		}
		if err := s.snapshotRepo.InsertEmployeeRow(ctx, row); err != nil {
			s.logger.Warn("employee snapshot row skipped",
				slog.String("employee_id", emp.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		inserted++
	}

	return inserted, nil
}

func (s *Service) generateDepartment(ctx context.Context, caller auth.Caller, scope report.Filter, batchID string, generatedAt time.Time) (int, error) {
	aggs, err := s.snapshotRepo.GetDepartmentAggregates(ctx)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, agg := range aggs {
		if scope.DepartmentID != nil && agg.DepartmentID != *scope.DepartmentID {
			continue
		}

		row := report.DepartmentRow{
			BatchID:          batchID,
			DepartmentID:     agg.DepartmentID,
			DepartmentName:   agg.DepartmentName,
			EmployeeCount:    agg.EmployeeCount,
			TotalBasicSalary: agg.TotalBasicSalary,
			GeneratedBy:      &caller.UserID,
			GeneratedAt:      generatedAt,
		}
		if err := s.snapshotRepo.InsertDepartmentRow(ctx, row); err != nil {
			s.logger.Warn("department snapshot row skipped",
				slog.String("department_id", agg.DepartmentID),
				slog.String("error", err.Error()),
			)
			continue
		}
		inserted++
	}

	return inserted, nil
}

// generateDeduction is the one regenerating family: prior rows matching the
// scope are deleted before inserting, inside one transaction, under an
// advisory lock keyed by the scope so concurrent regenerations serialize.
func (s *Service) generateDeduction(ctx context.Context, caller auth.Caller, scope report.Filter, batchID string, generatedAt time.Time) (int, error) {
	inserted := 0
	err := s.tx.RunSerialized(ctx, deductionScopeKey(scope), func(txCtx context.Context) error {
		deleted, err := s.snapshotRepo.DeleteDeductionRows(txCtx, scope.StartDate, scope.EndDate, scope.EmployeeID)
		if err != nil {
			return err
		}

		rows, err := s.distributor.Allocate(txCtx, scope.StartDate, scope.EndDate, scope.EmployeeID)
		if err != nil {
			return err
		}

		for _, ar := range rows {
			row := report.DeductionRow{
				BatchID:       batchID,
				EmployeeID:    ar.EmployeeID,
				EmployeeName:  ar.EmployeeName,
				DeductionName: ar.DeductionName,
				Amount:        ar.Amount,
				PeriodStart:   scope.StartDate,
				PeriodEnd:     scope.EndDate,
				GeneratedBy:   &caller.UserID,
				GeneratedAt:   generatedAt,
			}
			if err := s.snapshotRepo.InsertDeductionRow(txCtx, row); err != nil {
				return err
			}
			inserted++
		}

		s.logger.Info("deduction snapshot regenerated",
			slog.Int64("deleted", deleted),
			slog.Int("inserted", inserted),
		)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", report.ErrGenerationFailed, err)
	}

	return inserted, nil
}

func deductionScopeKey(scope report.Filter) string {
	start, end, emp := "", "", ""
	if scope.StartDate != nil {
		start = scope.StartDate.Format("2006-01-02")
	}
	if scope.EndDate != nil {
		end = scope.EndDate.Format("2006-01-02")
	}
	if scope.EmployeeID != nil {
		emp = *scope.EmployeeID
	}
	return fmt.Sprintf("report:deduction:%s:%s:%s", start, end, emp)
}

// periodOrCurrentMonth defaults a missing period to the current month to date.
func periodOrCurrentMonth(scope report.Filter, now time.Time) (time.Time, time.Time) {
	if scope.StartDate != nil && scope.EndDate != nil {
		return *scope.StartDate, *scope.EndDate
	}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if scope.StartDate != nil {
		start = *scope.StartDate
	}
	end := now
	if scope.EndDate != nil {
		end = *scope.EndDate
	}
	return start, end
}
