package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	reportservice "github.com/suweldo/payroll-backend-go/internal/service/report"
)

type ReportHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService *reportservice.Service
}

func NewReportHandler(reportService *reportservice.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func reportType(r *http.Request) (report.Type, error) {
	return report.ParseType(chi.URLParam(r, "type"))
}

func parseListRequest(r *http.Request) report.ListRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return report.ListRequest{
		EmployeeID:   q.Get("employee_id"),
		DepartmentID: q.Get("department_id"),
		Status:       q.Get("status"),
		StartDate:    q.Get("start_date"),
		EndDate:      q.Get("end_date"),
		Page:         page,
		Limit:        limit,
	}
}

// List handles GET /reports/{type}
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	typ, err := reportType(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.List(ctx, caller, typ, parseListRequest(r))
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

// Generate handles POST /reports/{type}/generate
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	typ, err := reportType(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
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

	result, err := h.reportService.Generate(ctx, caller, typ, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report generated", result)
}

// GetByID handles GET /reports/{type}/{id}
func (h *reportHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	typ, err := reportType(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reportID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid report id", nil)
		return
	}

	row, err := h.reportService.Get(ctx, caller, typ, reportID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, row)
}

// Export handles GET /reports/{type}/export?format=csv|xls
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	typ, err := reportType(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format, err := reportservice.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.Export(ctx, caller, typ, format, parseListRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Data, file.Filename, file.ContentType)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
