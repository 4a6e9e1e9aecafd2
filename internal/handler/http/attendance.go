package http

import (
	"net/http"

	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	attendanceservice "github.com/suweldo/payroll-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceservice.Service
}

func NewAttendanceHandler(attendanceService *attendanceservice.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Summary handles GET /attendance/summary
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := auth.CallerFromContext(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	req := attendance.SummaryRequest{
		EmployeeID: q.Get("employee_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	}

	result, err := h.attendanceService.SummarizePeriod(ctx, caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result == nil {
		result = []attendance.PeriodSummary{}
	}
	response.Success(w, result)
}
