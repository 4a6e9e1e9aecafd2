package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	EmployeeID string `json:"employee_id,omitempty"` // empty = all employees in the caller's scope
}

func (r *GenerateRequest) Validate() error {
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
	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid id"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed inclusive range. Validate must have passed.
func (r *GenerateRequest) Period() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type GenerateResponse struct {
	Inserted int `json:"inserted"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusProcessed), string(StatusPaid)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'processed' or 'paid'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ArchiveRequest struct {
	IDs []string `json:"ids"`
}

func (r *ArchiveRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "ids", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID      *string
	Status          *string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
	IncludeArchived bool
	Page            int
	Limit           int
}

type SummaryQuery struct {
	StartDate  string
	EndDate    string
	EmployeeID string
}

func (q *SummaryQuery) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var okStart, okEnd bool
	if q.StartDate != "" {
		if start, okStart = validator.IsValidDate(q.StartDate); !okStart {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if q.EndDate != "" {
		if end, okEnd = validator.IsValidDate(q.EndDate); !okEnd {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if q.EmployeeID != "" && !validator.IsValidUUID(q.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid id"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed bounds; nil when the query left one open.
func (q *SummaryQuery) Period() (*time.Time, *time.Time) {
	var start, end *time.Time
	if t, ok := validator.IsValidDate(q.StartDate); ok {
		start = &t
	}
	if t, ok := validator.IsValidDate(q.EndDate); ok {
		end = &t
	}
	return start, end
}

type SummaryResponse struct {
	RecordCount      int              `json:"record_count"`
	TotalBasicSalary decimal.Decimal  `json:"total_basic_salary"`
	TotalOvertimePay decimal.Decimal  `json:"total_overtime_pay"`
	TotalDeductions  decimal.Decimal  `json:"total_deductions"`
	TotalNetPay      decimal.Decimal  `json:"total_net_pay"`
	ByStatus         map[string]int64 `json:"by_status"`
}

type RecordResponse struct {
	ID              string                     `json:"id"`
	EmployeeID      string                     `json:"employee_id"`
	EmployeeName    string                     `json:"employee_name"`
	DepartmentName  *string                    `json:"department_name,omitempty"`
	PeriodStart     string                     `json:"period_start"`
	PeriodEnd       string                     `json:"period_end"`
	BasicSalary     decimal.Decimal            `json:"basic_salary"`
	OvertimePay     decimal.Decimal            `json:"overtime_pay"`
	TotalDeductions decimal.Decimal            `json:"total_deductions"`
	NetPay          decimal.Decimal            `json:"net_pay"`
	DeductionDetail map[string]decimal.Decimal `json:"deduction_detail,omitempty"`
	Status          string                     `json:"status"`
	GeneratedBy     *string                    `json:"generated_by,omitempty"`
	GeneratedAt     string                     `json:"generated_at"`
	Archived        bool                       `json:"archived"`
}

type ListResponse struct {
	Items []RecordResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
