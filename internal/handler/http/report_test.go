package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/middleware"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
)

func newReportRouter(h ReportHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/reports/{type}", h.List)
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestReportList_UnknownType(t *testing.T) {
	router := newReportRouter(NewReportHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/reports/nonsense", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestReportList_MissingCaller(t *testing.T) {
	router := newReportRouter(NewReportHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/reports/payroll", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireHR(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireHR(next)

	tests := []struct {
		role     auth.Role
		wantCode int
		wantNext bool
	}{
		{auth.RoleEmployee, http.StatusForbidden, false},
		{auth.RoleHR, http.StatusOK, true},
		{auth.RoleAdmin, http.StatusOK, true},
	}

	for _, tt := range tests {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := auth.WithCaller(req.Context(), auth.Caller{UserID: "u1", Role: tt.role})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, tt.wantCode, rec.Code, tt.role)
		assert.Equal(t, tt.wantNext, called, tt.role)
	}
}

func TestRequireHR_NoCaller(t *testing.T) {
	handler := middleware.RequireHR(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
