package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/user"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var partial *rotation.PartialBatchFailureError
	if errors.As(err, &partial) {
		MultiStatus(w, partial.Error(), partial.Report)
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		BadRequest(w, "Malformed JSON body", nil)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrCompanyRequired):
		Forbidden(w, "User is not associated with a company")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Shift registry errors
	case errors.Is(err, shift.ErrShiftTypeNotFound):
		NotFound(w, "Shift type not found")
	case errors.Is(err, shift.ErrShiftTypeCodeExists):
		Conflict(w, "Shift type code already exists")
	case errors.Is(err, shift.ErrShiftTypeInUse):
		Conflict(w, "Shift type is used by a pattern or matrix")
	case errors.Is(err, shift.ErrShiftPatternNotFound):
		NotFound(w, "Shift pattern not found")
	case errors.Is(err, shift.ErrShiftPatternInUse):
		Conflict(w, "Shift pattern is bound to a group")

	// Rotation errors
	case errors.Is(err, rotation.ErrGroupNotFound):
		NotFound(w, "Group shift not found")
	case errors.Is(err, rotation.ErrGroupCodeExists):
		Conflict(w, "Group shift code already exists")
	case errors.Is(err, rotation.ErrMatrixNotFound):
		NotFound(w, "Monthly matrix not found")
	case errors.Is(err, rotation.ErrMatrixVersionConflict):
		Conflict(w, "Monthly matrix was modified by another request, reload and retry")
	case errors.Is(err, rotation.ErrOverwriteNotConfirmed):
		Conflict(w, "Monthly matrix already exists, set confirm_overwrite to replace it")
	case errors.Is(err, rotation.ErrInvalidPeriod):
		ValidationError(w, map[string]string{"period": "period must be in YYYY-MM format"})
	case errors.Is(err, rotation.ErrInvalidConfiguration):
		InvalidConfiguration(w, err.Error())

	// Roster and attendance errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is not active")
	case errors.Is(err, attendance.ErrScheduleDayNotFound):
		NotFound(w, "No schedule found for employee on this date")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
