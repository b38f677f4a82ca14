package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/user"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token. It runs
// after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		if _, err := jwt.ClaimsFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireCompany rejects tokens that carry no company_id, which scopes every
// rotation query.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if claims.CompanyID == "" {
			response.HandleError(w, user.ErrCompanyRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
