package rotation

import (
	"errors"
	"fmt"
)

var (
	// Group Shift Errors
	ErrGroupNotFound   = errors.New("group shift not found")
	ErrGroupCodeExists = errors.New("group shift with this code already exists")

	// Matrix Errors
	ErrMatrixNotFound        = errors.New("monthly matrix not found")
	ErrMatrixVersionConflict = errors.New("monthly matrix was modified by another request")
	ErrOverwriteNotConfirmed = errors.New("monthly matrix already exists, confirm_overwrite is required")
	ErrInvalidPeriod         = errors.New("invalid period, use YYYY-MM")

	// Configuration Errors
	ErrInvalidConfiguration = errors.New("invalid rotation configuration")
	ErrPatternNotBound      = fmt.Errorf("%w: group has no bound shift pattern", ErrInvalidConfiguration)
	ErrEmptyPattern         = fmt.Errorf("%w: shift pattern has no tokens", ErrInvalidConfiguration)

	// Sync Errors
	ErrPartialBatchFailure = errors.New("sync finished with per-employee failures")
)

// PartialBatchFailureError carries the report of a sync run in which at least
// one employee failed. errors.Is(err, ErrPartialBatchFailure) holds.
type PartialBatchFailureError struct {
	Report SyncReport
}

func (e *PartialBatchFailureError) Error() string {
	return fmt.Sprintf("%s: %d of %d employees failed", ErrPartialBatchFailure.Error(), len(e.Report.Errors), e.Report.Employees)
}

func (e *PartialBatchFailureError) Unwrap() error {
	return ErrPartialBatchFailure
}
