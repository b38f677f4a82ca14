// Package tenant resolves the company a request acts on.
package tenant

import (
	"context"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type companyKey struct{}

// WithCompanyID scopes ctx to a company without a token, for jobs and the CLI.
func WithCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, companyKey{}, companyID)
}

// CompanyID returns the explicit company of ctx, falling back to the
// company_id claim of the verified JWT.
func CompanyID(ctx context.Context) (string, error) {
	if id, ok := ctx.Value(companyKey{}).(string); ok && id != "" {
		return id, nil
	}

	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return "", user.ErrInvalidToken
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", user.ErrCompanyRequired
	}
	return companyID, nil
}
