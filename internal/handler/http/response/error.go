package response

import (
	"errors"
	"net/http"

	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/deduction"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrMissingCaller):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrHRAccessRequired):
		Forbidden(w, "HR or admin privilege required")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrCompensationProfileNotFound):
		NotFound(w, "Compensation profile not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		Conflict(w, "Payroll status may only move from processed to paid")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrNoCompensationForPayroll):
		BadRequest(w, "Employee has no compensation profile configured", nil)

	// Deduction domain errors
	case errors.Is(err, deduction.ErrTypeNotFound):
		NotFound(w, "Deduction type not found")
	case errors.Is(err, deduction.ErrEmptyCatalog):
		BadRequest(w, "Deduction type catalog is empty", nil)

	// Report domain errors
	case errors.Is(err, report.ErrUnknownType):
		BadRequest(w, "Unknown report type", nil)
	case errors.Is(err, report.ErrUnknownFormat):
		BadRequest(w, "Unknown export format", nil)
	case errors.Is(err, report.ErrRowNotFound):
		NotFound(w, "Report row not found")
	case errors.Is(err, report.ErrGenerationFailed):
		InternalServerError(w, "Report generation failed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
