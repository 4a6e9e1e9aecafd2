package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
	payrollservice "github.com/suweldo/payroll-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	Unarchive(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService *payrollservice.Service
}

func NewPayrollHandler(payrollService *payrollservice.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Generate handles POST /payrolls/generate
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	result, err := h.payrollService.Generate(ctx, caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

// List handles GET /payrolls
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	filter := payroll.Filter{IncludeArchived: q.Get("include_archived") == "true"}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("start_date"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "invalid start_date parameter", nil)
			return
		}
		filter.PeriodStart = &d
	}
	if v := q.Get("end_date"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "invalid end_date parameter", nil)
			return
		}
		filter.PeriodEnd = &d
	}

	result, err := h.payrollService.List(ctx, caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Items, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.Total,
		TotalPages: totalPages(result.Total, result.Limit),
	})
}

// Summary handles GET /payrolls/summary
func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	query := payroll.SummaryQuery{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		EmployeeID: q.Get("employee_id"),
	}

	result, err := h.payrollService.Summary(ctx, caller, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetByID handles GET /payrolls/{id}
func (h *payrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetByID(ctx, caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateStatus handles PATCH /payrolls/{id}/status
func (h *payrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req payroll.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.payrollService.UpdateStatus(ctx, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll status updated", nil)
}

// Archive handles POST /payrolls/archive
func (h *payrollHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true, "Payroll records archived")
}

// Unarchive handles POST /payrolls/unarchive
func (h *payrollHandlerImpl) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false, "Payroll records restored")
}

func (h *payrollHandlerImpl) setArchived(w http.ResponseWriter, r *http.Request, archived bool, message string) {
	var req payroll.ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	affected, err := h.payrollService.SetArchived(r.Context(), req, archived)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, map[string]int64{"affected": affected})
}

// Payslip handles GET /payrolls/{id}/payslip
func (h *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	data, err := h.payrollService.RenderPayslip(ctx, caller, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, data, "payslip-"+id+".pdf", "application/pdf")
}
