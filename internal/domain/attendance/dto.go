package attendance

import (
	"time"

	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

// PeriodSummary - per-employee aggregation over one period. Employees with no
// attendance rows in the period emit no summary at all, they are not zero rows.
type PeriodSummary struct {
	EmployeeID       string  `json:"employee_id"`
	PresentDays      int     `json:"present_days"`
	AbsentDays       int     `json:"absent_days"`
	LeaveDays        int     `json:"leave_days"`
	LateDays         int     `json:"late_days"`
	TotalHoursWorked float64 `json:"total_hours_worked"`
	LateMinutes      int     `json:"late_minutes"`
	UndertimeMinutes int     `json:"undertime_minutes"`
	OvertimeMinutes  int     `json:"overtime_minutes"`
}

type SummaryRequest struct {
	EmployeeID string `json:"employee_id,omitempty"` // empty = all visible employees
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed inclusive date range. Validate must have passed.
func (r *SummaryRequest) Period() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}
