package shift

import "context"

type ShiftTypeRepository interface {
	Create(ctx context.Context, t ShiftType) (ShiftType, error)
	GetByCode(ctx context.Context, companyID, code string) (ShiftType, error)
	// GetByCodes returns the types found for codes, keyed by code. Missing codes are absent from the map.
	GetByCodes(ctx context.Context, companyID string, codes []string) (map[string]ShiftType, error)
	List(ctx context.Context, companyID string, activeOnly bool) ([]ShiftType, error)
	Update(ctx context.Context, t ShiftType) (ShiftType, error)
	Delete(ctx context.Context, companyID, code string) error
	// IsReferenced reports whether any pattern or monthly matrix of the company uses code.
	IsReferenced(ctx context.Context, companyID, code string) (bool, error)
	// LockByCode is GetByCode holding the row exclusively until the transaction ends.
	LockByCode(ctx context.Context, companyID, code string) (ShiftType, error)
	// LockByCodes is GetByCodes keeping the rows from being deleted until the transaction ends.
	LockByCodes(ctx context.Context, companyID string, codes []string) (map[string]ShiftType, error)
}

type ShiftPatternRepository interface {
	Create(ctx context.Context, p ShiftPattern) (ShiftPattern, error)
	GetByID(ctx context.Context, id, companyID string) (ShiftPattern, error)
	List(ctx context.Context, companyID string) ([]ShiftPattern, error)
	Update(ctx context.Context, p ShiftPattern) (ShiftPattern, error)
	Delete(ctx context.Context, id, companyID string) error
	// IsBound reports whether a live group shift references the pattern.
	IsBound(ctx context.Context, id, companyID string) (bool, error)
}
