package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RotationHandler interface {
	// Group Shift
	CreateGroup(w http.ResponseWriter, r *http.Request)
	GetGroup(w http.ResponseWriter, r *http.Request)
	ListGroups(w http.ResponseWriter, r *http.Request)
	UpdateGroup(w http.ResponseWriter, r *http.Request)
	DeleteGroup(w http.ResponseWriter, r *http.Request)

	// Membership
	ListMembers(w http.ResponseWriter, r *http.Request)
	AssignMember(w http.ResponseWriter, r *http.Request)
	UnassignMember(w http.ResponseWriter, r *http.Request)

	// Monthly Matrix
	GetMatrix(w http.ResponseWriter, r *http.Request)
	SaveMatrix(w http.ResponseWriter, r *http.Request)
	GenerateMatrix(w http.ResponseWriter, r *http.Request)
	SyncMatrix(w http.ResponseWriter, r *http.Request)
	ExportMatrix(w http.ResponseWriter, r *http.Request)
}

type rotationHandlerImpl struct {
	rotationService rotation.RotationService
}

func NewRotationHandler(rotationService rotation.RotationService) RotationHandler {
	return &rotationHandlerImpl{
		rotationService: rotationService,
	}
}

// decodeOptional decodes a JSON body, treating an empty body as the zero value.
func decodeOptional(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ==================== GROUP SHIFT HANDLERS ====================

func (h *rotationHandlerImpl) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req rotation.CreateGroupShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rotationService.CreateGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Group shift created successfully", result)
}

func (h *rotationHandlerImpl) GetGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.rotationService.GetGroup(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rotationHandlerImpl) ListGroups(w http.ResponseWriter, r *http.Request) {
	filter := rotation.GroupShiftFilter{
		ActiveOnly: r.URL.Query().Get("active_only") == "true",
	}

	results, err := h.rotationService.ListGroups(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: len(results)})
}

func (h *rotationHandlerImpl) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req rotation.UpdateGroupShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.rotationService.UpdateGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group shift updated successfully", result)
}

func (h *rotationHandlerImpl) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.rotationService.DeleteGroup(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group shift deleted successfully", nil)
}

// ==================== MEMBERSHIP HANDLERS ====================

func (h *rotationHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	results, err := h.rotationService.ListMembers(r.Context(), groupID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: len(results)})
}

func (h *rotationHandlerImpl) AssignMember(w http.ResponseWriter, r *http.Request) {
	req := rotation.MemberRequest{
		GroupID:    chi.URLParam(r, "id"),
		EmployeeID: chi.URLParam(r, "employeeID"),
	}

	if err := h.rotationService.AssignMember(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee assigned to group successfully", nil)
}

func (h *rotationHandlerImpl) UnassignMember(w http.ResponseWriter, r *http.Request) {
	req := rotation.MemberRequest{
		GroupID:    chi.URLParam(r, "id"),
		EmployeeID: chi.URLParam(r, "employeeID"),
	}

	if err := h.rotationService.UnassignMember(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee removed from group successfully", nil)
}

// ==================== MONTHLY MATRIX HANDLERS ====================

func (h *rotationHandlerImpl) GetMatrix(w http.ResponseWriter, r *http.Request) {
	result, err := h.rotationService.GetMatrix(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveMatrix applies a manual edit, replacing all days of the month.
func (h *rotationHandlerImpl) SaveMatrix(w http.ResponseWriter, r *http.Request) {
	var req rotation.SaveMatrixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.GroupID = chi.URLParam(r, "id")
	req.Period = chi.URLParam(r, "period")

	result, err := h.rotationService.SaveMatrix(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly matrix saved successfully", result)
}

// GenerateMatrix regenerates the month from the group's bound pattern.
func (h *rotationHandlerImpl) GenerateMatrix(w http.ResponseWriter, r *http.Request) {
	var req rotation.GenerateMatrixRequest
	if err := decodeOptional(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.GroupID = chi.URLParam(r, "id")
	req.Period = chi.URLParam(r, "period")

	result, err := h.rotationService.GenerateMatrix(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Monthly matrix generated successfully", result)
}

func (h *rotationHandlerImpl) SyncMatrix(w http.ResponseWriter, r *http.Request) {
	var req rotation.SyncMatrixRequest
	if err := decodeOptional(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.GroupID = chi.URLParam(r, "id")
	req.Period = chi.URLParam(r, "period")

	report, err := h.rotationService.SyncMatrix(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly matrix synced successfully", report)
}

func (h *rotationHandlerImpl) ExportMatrix(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	period := chi.URLParam(r, "period")

	var buf bytes.Buffer
	if err := h.rotationService.ExportMatrix(r.Context(), groupID, period, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "matrix-"+period+".xlsx", xlsxContentType, buf.Bytes())
}
