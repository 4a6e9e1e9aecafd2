package middleware

import (
	"net/http"

	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
)

// RequireHR gates write operations to hr or admin callers. Must run after
// AuthRequired so the caller is already in the context.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := auth.CallerFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !caller.CanSeeAll() {
			response.HandleError(w, auth.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
