package rotation

import "context"

type GroupShiftRepository interface {
	Create(ctx context.Context, g GroupShift) (GroupShift, error)
	GetByID(ctx context.Context, id, companyID string) (GroupShift, error)
	List(ctx context.Context, companyID string, filter GroupShiftFilter) ([]GroupShift, error)
	Update(ctx context.Context, g GroupShift) (GroupShift, error)
	SoftDelete(ctx context.Context, id, companyID string) error
	// ListWithPattern returns active groups of every company that have a bound pattern.
	ListWithPattern(ctx context.Context) ([]GroupShift, error)
}

type MatrixRepository interface {
	Get(ctx context.Context, companyID, groupID string, period Period) (MonthlyMatrix, error)
	Exists(ctx context.Context, companyID, groupID string, period Period) (bool, error)
	// Save inserts or replaces the matrix of (group, period) in one statement and
	// bumps its version. With a non-nil expectedVersion an existing row is only
	// replaced when its version matches, otherwise ErrMatrixVersionConflict.
	Save(ctx context.Context, m MonthlyMatrix, expectedVersion *int) (MonthlyMatrix, error)
}
