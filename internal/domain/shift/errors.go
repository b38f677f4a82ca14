package shift

import "errors"

var (
	// Shift Type Errors
	ErrShiftTypeNotFound   = errors.New("shift type not found")
	ErrShiftTypeCodeExists = errors.New("shift type with this code already exists")
	ErrShiftTypeInUse      = errors.New("shift type is referenced by a pattern or matrix")

	// Shift Pattern Errors
	ErrShiftPatternNotFound = errors.New("shift pattern not found")
	ErrShiftPatternInUse    = errors.New("shift pattern is bound to a group")
)
