package http

import (
	"encoding/json"
	"net/http"

	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	reportservice "github.com/suweldo/payroll-backend-go/internal/service/report"
)

type DeductionHandler interface {
	Distribute(w http.ResponseWriter, r *http.Request)
}

type deductionHandlerImpl struct {
	reportService *reportservice.Service
}

func NewDeductionHandler(reportService *reportservice.Service) DeductionHandler {
	return &deductionHandlerImpl{reportService: reportService}
}

// Distribute handles POST /deductions/distribute. It regenerates the
// deduction snapshot family for the given scope; repeating the call with the
// same scope replaces the previous rows instead of duplicating them.
func (h *deductionHandlerImpl) Distribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req report.GenerateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid request body", nil)
			return
		}
	}

	result, err := h.reportService.Generate(ctx, caller, report.TypeDeduction, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deductions distributed", result)
}
