package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	// Shift Type
	CreateShiftType(w http.ResponseWriter, r *http.Request)
	GetShiftType(w http.ResponseWriter, r *http.Request)
	ListShiftTypes(w http.ResponseWriter, r *http.Request)
	UpdateShiftType(w http.ResponseWriter, r *http.Request)
	DeleteShiftType(w http.ResponseWriter, r *http.Request)

	// Shift Pattern
	CreateShiftPattern(w http.ResponseWriter, r *http.Request)
	GetShiftPattern(w http.ResponseWriter, r *http.Request)
	ListShiftPatterns(w http.ResponseWriter, r *http.Request)
	UpdateShiftPattern(w http.ResponseWriter, r *http.Request)
	DeleteShiftPattern(w http.ResponseWriter, r *http.Request)
	PreviewShiftPattern(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService    shift.ShiftService
	rotationService rotation.RotationService
}

func NewShiftHandler(shiftService shift.ShiftService, rotationService rotation.RotationService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService:    shiftService,
		rotationService: rotationService,
	}
}

// ==================== SHIFT TYPE HANDLERS ====================

func (h *shiftHandlerImpl) CreateShiftType(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.shiftService.CreateShiftType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift type created successfully", result)
}

func (h *shiftHandlerImpl) GetShiftType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	result, err := h.shiftService.GetShiftType(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *shiftHandlerImpl) ListShiftTypes(w http.ResponseWriter, r *http.Request) {
	filter := shift.ShiftTypeFilter{
		ActiveOnly: r.URL.Query().Get("active_only") == "true",
	}

	results, err := h.shiftService.ListShiftTypes(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: len(results)})
}

func (h *shiftHandlerImpl) UpdateShiftType(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.Code = chi.URLParam(r, "code")

	result, err := h.shiftService.UpdateShiftType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift type updated successfully", result)
}

func (h *shiftHandlerImpl) DeleteShiftType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.shiftService.DeleteShiftType(r.Context(), code); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift type deleted successfully", nil)
}

// ==================== SHIFT PATTERN HANDLERS ====================

func (h *shiftHandlerImpl) CreateShiftPattern(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.shiftService.CreateShiftPattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift pattern created successfully", result)
}

func (h *shiftHandlerImpl) GetShiftPattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.shiftService.GetShiftPattern(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *shiftHandlerImpl) ListShiftPatterns(w http.ResponseWriter, r *http.Request) {
	results, err := h.shiftService.ListShiftPatterns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: len(results)})
}

func (h *shiftHandlerImpl) UpdateShiftPattern(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.shiftService.UpdateShiftPattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift pattern updated successfully", result)
}

func (h *shiftHandlerImpl) DeleteShiftPattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteShiftPattern(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift pattern deleted successfully", nil)
}

// PreviewShiftPattern renders the month a pattern would produce without saving it.
func (h *shiftHandlerImpl) PreviewShiftPattern(w http.ResponseWriter, r *http.Request) {
	req := rotation.PreviewPatternRequest{
		PatternID:     chi.URLParam(r, "id"),
		Period:        r.URL.Query().Get("period"),
		ReferenceDate: r.URL.Query().Get("reference_date"),
	}

	result, err := h.rotationService.PreviewPattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
