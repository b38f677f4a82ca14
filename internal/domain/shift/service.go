package shift

import "context"

type ShiftService interface {
	// Shift Type
	CreateShiftType(ctx context.Context, req CreateShiftTypeRequest) (ShiftTypeResponse, error)
	GetShiftType(ctx context.Context, code string) (ShiftTypeResponse, error)
	ListShiftTypes(ctx context.Context, filter ShiftTypeFilter) ([]ShiftTypeResponse, error)
	UpdateShiftType(ctx context.Context, req UpdateShiftTypeRequest) (ShiftTypeResponse, error)
	DeleteShiftType(ctx context.Context, code string) error

	// Shift Pattern
	CreateShiftPattern(ctx context.Context, req CreateShiftPatternRequest) (ShiftPatternResponse, error)
	GetShiftPattern(ctx context.Context, id string) (ShiftPatternResponse, error)
	ListShiftPatterns(ctx context.Context) ([]ShiftPatternResponse, error)
	UpdateShiftPattern(ctx context.Context, req UpdateShiftPatternRequest) (ShiftPatternResponse, error)
	DeleteShiftPattern(ctx context.Context, id string) error
}
