package report

import (
	"time"

	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Filter - shared filter set for list, generate and export. The same parsed
// filter object feeds both the count and the page query so their predicates
// cannot drift apart.
type Filter struct {
	EmployeeID   *string
	DepartmentID *string
	Status       *string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	Limit        int
}

// ListRequest carries the raw query string values before parsing.
type ListRequest struct {
	EmployeeID   string
	DepartmentID string
	Status       string
	StartDate    string
	EndDate      string
	Page         int
	Limit        int
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid id"})
	}
	if r.DepartmentID != "" && !validator.IsValidUUID(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "must be a valid id"})
	}
	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be positive"})
	}
	if r.Limit < 0 || r.Limit > MaxLimit {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 1 and 200"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToFilter parses the request into a Filter with pagination defaults applied.
// Validate must have passed.
func (r *ListRequest) ToFilter() Filter {
	f := Filter{Page: r.Page, Limit: r.Limit}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if r.EmployeeID != "" {
		f.EmployeeID = &r.EmployeeID
	}
	if r.DepartmentID != "" {
		f.DepartmentID = &r.DepartmentID
	}
	if r.Status != "" {
		f.Status = &r.Status
	}
	if r.StartDate != "" {
		d, _ := validator.IsValidDate(r.StartDate)
		f.StartDate = &d
	}
	if r.EndDate != "" {
		d, _ := validator.IsValidDate(r.EndDate)
		f.EndDate = &d
	}
	return f
}

type GenerateRequest struct {
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	EmployeeID   string `json:"employee_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid id"})
	}
	if r.DepartmentID != "" && !validator.IsValidUUID(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "must be a valid id"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Scope converts the generate request to a filter without pagination.
func (r *GenerateRequest) Scope() Filter {
	f := Filter{}
	if r.EmployeeID != "" {
		f.EmployeeID = &r.EmployeeID
	}
	if r.DepartmentID != "" {
		f.DepartmentID = &r.DepartmentID
	}
	if r.StartDate != "" {
		d, _ := validator.IsValidDate(r.StartDate)
		f.StartDate = &d
	}
	if r.EndDate != "" {
		d, _ := validator.IsValidDate(r.EndDate)
		f.EndDate = &d
	}
	return f
}

type GenerateResponse struct {
	Inserted int `json:"inserted"`
}

// ListResult - one page of snapshot rows. Items holds the family-specific
// row slice; the handler serializes it as-is.
type ListResult struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}
