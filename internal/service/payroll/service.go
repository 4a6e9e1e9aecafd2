package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	attendancesvc "github.com/suweldo/payroll-backend-go/internal/service/attendance"
)

type Service struct {
	payrollRepo  payroll.RecordRepository
	employeeRepo employee.EmployeeRepository
	eventRepo    attendance.EventRepository
	logger       *slog.Logger
}

func NewService(
	payrollRepo payroll.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	eventRepo attendance.EventRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		logger:       logger,
	}
}

// Generate runs the payroll pipeline for every employee in scope: aggregate
// attendance, compute deductions and overtime, persist one processed record
// per employee. A failed employee is logged and skipped; the batch continues.
func (s *Service) Generate(ctx context.Context, caller auth.Caller, req payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResponse{}, err
	}

	employeeID := req.EmployeeID
	if !caller.CanSeeAll() {
		employeeID = caller.EmployeeID
	}

	employees, err := s.resolveScope(ctx, employeeID)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	start, end := req.Period()
	inserted := 0
	for _, emp := range employees {
		if err := s.generateOne(ctx, caller, emp, start, end); err != nil {
			s.logger.Warn("payroll generation skipped employee",
				slog.String("employee_id", emp.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		inserted++
	}

	return payroll.GenerateResponse{Inserted: inserted}, nil
}

func (s *Service) resolveScope(ctx context.Context, employeeID string) ([]employee.Employee, error) {
	if employeeID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		return []employee.Employee{emp}, nil
	}
	return s.employeeRepo.GetActive(ctx)
}

func (s *Service) generateOne(ctx context.Context, caller auth.Caller, emp employee.Employee, start, end time.Time) error {
	profile, err := s.employeeRepo.GetCompensationProfile(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, employee.ErrCompensationProfileNotFound) {
			return payroll.ErrNoCompensationForPayroll
		}
		return err
	}

	events, err := s.eventRepo.GetEventsInRange(ctx, emp.ID, start, end)
	if err != nil {
		return fmt.Errorf("failed to load attendance events: %w", err)
	}

	adj := PeriodAdjustments{}
	if summaries := attendancesvc.FoldEvents(events); len(summaries) > 0 {
		sum := summaries[0]
		adj.LateMinutes = int64(sum.LateMinutes)
		adj.UndertimeMinutes = int64(sum.UndertimeMinutes)
		adj.OvertimeMinutes = int64(sum.OvertimeMinutes)
		// Absence is recorded day-wise; the calculator's minute input carries
		// paid hours per absent day and relies on its own 60x scaling to land
		// each absent day at one daily wage.
		adj.AbsentMinutes = int64(sum.AbsentDays) * profile.PaidHours().IntPart()
	}

	b := Calculate(profile, adj)

	detail := make(map[string]decimal.Decimal)
	for _, line := range b.Lines() {
		if line.Kind == payroll.KindOvertimePay {
			continue
		}
		detail[line.Name] = line.Amount
	}

	totalDeductions := b.TotalDeductions()
	record := payroll.Record{
		EmployeeID:      emp.ID,
		PeriodStart:     start,
		PeriodEnd:       end,
		BasicSalary:     profile.BasicSalary,
		OvertimePay:     b.OvertimePay,
		TotalDeductions: totalDeductions,
		NetPay:          profile.BasicSalary.Add(b.OvertimePay).Sub(totalDeductions).Round(2),
		DeductionDetail: detail,
		Status:          payroll.StatusProcessed,
		GeneratedBy:     &caller.UserID,
		GeneratedAt:     time.Now(),
	}

	if _, err := s.payrollRepo.Create(ctx, record); err != nil {
		return err
	}
	return nil
}

// GetByID returns one payroll record; non-privileged callers only see their own.
func (s *Service) GetByID(ctx context.Context, caller auth.Caller, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if !caller.CanSeeAll() && record.EmployeeID != caller.EmployeeID {
		return payroll.RecordResponse{}, payroll.ErrRecordNotFound
	}
	return toRecordResponse(record), nil
}

func (s *Service) List(ctx context.Context, caller auth.Caller, filter payroll.Filter) (payroll.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}

	records, total, err := s.payrollRepo.List(ctx, filter, caller.EmployeeID, caller.CanSeeAll())
	if err != nil {
		return payroll.ListResponse{}, err
	}

	items := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toRecordResponse(r))
	}

	return payroll.ListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// UpdateStatus applies an approval transition. The only legal move is
// processed to paid; anything else is rejected before touching the database.
func (s *Service) UpdateStatus(ctx context.Context, req payroll.UpdateStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	to := payroll.Status(req.Status)
	if !payroll.StatusProcessed.CanTransition(to) {
		return payroll.ErrInvalidStatusTransition
	}

	return s.payrollRepo.UpdateStatus(ctx, req.ID, payroll.StatusProcessed, to)
}

// SetArchived bulk-archives or restores payroll records. Archived records drop
// out of default listings but survive for audit.
func (s *Service) SetArchived(ctx context.Context, req payroll.ArchiveRequest, archived bool) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return s.payrollRepo.SetArchived(ctx, req.IDs, archived)
}

// Summary totals the non-archived records in the period for the caller's
// scope, grouped nowhere finer than status. Backs the payroll dashboard card.
func (s *Service) Summary(ctx context.Context, caller auth.Caller, q payroll.SummaryQuery) (payroll.SummaryResponse, error) {
	if err := q.Validate(); err != nil {
		return payroll.SummaryResponse{}, err
	}

	employeeID := q.EmployeeID
	if !caller.CanSeeAll() {
		employeeID = caller.EmployeeID
	}

	start, end := q.Period()
	records, err := s.payrollRepo.ListByPeriod(ctx, start, end, employeeID)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	resp := payroll.SummaryResponse{
		TotalBasicSalary: decimal.Zero,
		TotalOvertimePay: decimal.Zero,
		TotalDeductions:  decimal.Zero,
		TotalNetPay:      decimal.Zero,
		ByStatus:         make(map[string]int64),
	}
	for _, r := range records {
		resp.RecordCount++
		resp.TotalBasicSalary = resp.TotalBasicSalary.Add(r.BasicSalary)
		resp.TotalOvertimePay = resp.TotalOvertimePay.Add(r.OvertimePay)
		resp.TotalDeductions = resp.TotalDeductions.Add(r.TotalDeductions)
		resp.TotalNetPay = resp.TotalNetPay.Add(r.NetPay)
		resp.ByStatus[string(r.Status)]++
	}

	return resp, nil
}

func toRecordResponse(r payroll.Record) payroll.RecordResponse {
	resp := payroll.RecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		PeriodStart:     r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       r.PeriodEnd.Format("2006-01-02"),
		BasicSalary:     r.BasicSalary,
		OvertimePay:     r.OvertimePay,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,
		DeductionDetail: r.DeductionDetail,
		Status:          string(r.Status),
		GeneratedBy:     r.GeneratedBy,
		GeneratedAt:     r.GeneratedAt.Format(time.RFC3339),
		Archived:        r.Archived,
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	resp.DepartmentName = r.DepartmentName
	return resp
}
