package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or missing token claims")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCompanyRequired         = errors.New("user is not associated with a company")
)
