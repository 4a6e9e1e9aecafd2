package attendance

import (
	"context"
	"fmt"

	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
)

type Service struct {
	eventRepo attendance.EventRepository
}

func NewService(eventRepo attendance.EventRepository) *Service {
	return &Service{eventRepo: eventRepo}
}

// SummarizePeriod aggregates attendance events over an inclusive date range.
// Non-privileged callers are always scoped to their own employee id, whatever
// the request says.
func (s *Service) SummarizePeriod(ctx context.Context, caller auth.Caller, req attendance.SummaryRequest) ([]attendance.PeriodSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employeeID := req.EmployeeID
	if !caller.CanSeeAll() {
		employeeID = caller.EmployeeID
	}

	start, end := req.Period()
	events, err := s.eventRepo.GetEventsInRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance events: %w", err)
	}

	return FoldEvents(events), nil
}
