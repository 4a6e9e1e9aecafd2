package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
)

// AuthRequired validates the access token and places the resolved Caller in
// the request context. Services receive the caller explicitly and never read
// claims themselves.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			roleStr, ok := claims["role"].(string)
			if !ok || roleStr == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			caller := auth.Caller{
				UserID: userID,
				Role:   auth.Role(roleStr),
			}
			if employeeID, ok := claims["employee_id"].(string); ok {
				caller.EmployeeID = employeeID
			}

			ctx := auth.WithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
