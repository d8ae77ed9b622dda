package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/handler/http/response"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests whose verified token is missing, expired or
// not an access token. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, auth.ErrInvalidToken.Error())
			return
		}
		if token == nil {
			response.HandleError(w, auth.ErrUnauthenticated)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
