package middleware

import (
	"net/http"

	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/handler/http/response"
)

// RequireApprover lets through callers holding a manager role or admin rights.
func RequireApprover(authorizer auth.Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authorizer.CanApprove(r.Context()) {
				response.HandleError(w, auth.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
