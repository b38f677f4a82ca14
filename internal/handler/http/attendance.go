package http

import (
	"bytes"
	"net/http"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/user"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	GroupReport(w http.ResponseWriter, r *http.Request)
	ExportGroupReport(w http.ResponseWriter, r *http.Request)
	DeriveDay(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func (h *attendanceHandlerImpl) GroupReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GroupReport(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ExportGroupReport(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	var buf bytes.Buffer
	if err := h.attendanceService.ExportGroupReport(r.Context(), chi.URLParam(r, "id"), period, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "attendance-"+period+".xlsx", xlsxContentType, buf.Bytes())
}

// DeriveDay is open to the employee themselves; anyone else needs attendance.view_all.
func (h *attendanceHandlerImpl) DeriveDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	own := claims.EmployeeID != "" && claims.EmployeeID == employeeID
	if !(own && user.HasPermission(claims.Role, user.PermissionAttendanceViewOwn)) &&
		!user.HasPermission(claims.Role, user.PermissionAttendanceViewAll) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	result, err := h.attendanceService.DeriveDay(r.Context(), employeeID, chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
