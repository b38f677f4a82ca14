package shift

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/validator"
)

type CreateShiftTypeRequest struct {
	Code              string `json:"code" validate:"required,shiftcode"`
	Name              string `json:"name" validate:"required,max=100"`
	ClockIn           string `json:"clock_in" validate:"required,clock"`
	ClockOut          string `json:"clock_out" validate:"required,clock"`
	IsNextDayCheckout bool   `json:"is_next_day_checkout"`
	Active            *bool  `json:"active"`
}

func (r *CreateShiftTypeRequest) Normalize() {
	r.Code = NormalizeToken(r.Code)
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateShiftTypeRequest) Validate() error {
	r.Normalize()
	errs := validator.Struct(r)

	if r.Code == OffToken {
		errs.Add("code", "code OFF is reserved for rest days")
	}
	errs = append(errs, validateWindow(r.ClockIn, r.ClockOut, r.IsNextDayCheckout)...)

	return errs.OrNil()
}

type UpdateShiftTypeRequest struct {
	Code              string  `json:"-"`
	Name              *string `json:"name,omitempty" validate:"omitempty,max=100"`
	ClockIn           *string `json:"clock_in,omitempty" validate:"omitempty,clock"`
	ClockOut          *string `json:"clock_out,omitempty" validate:"omitempty,clock"`
	IsNextDayCheckout *bool   `json:"is_next_day_checkout,omitempty"`
	Active            *bool   `json:"active,omitempty"`
}

func (r *UpdateShiftTypeRequest) Validate() error {
	r.Code = NormalizeToken(r.Code)
	errs := validator.Struct(r)

	if validator.IsEmpty(r.Code) {
		errs.Add("code", "code is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name cannot be empty")
	}

	return errs.OrNil()
}

// Apply merges the request into t and re-checks the resulting window.
func (r *UpdateShiftTypeRequest) Apply(t ShiftType) (ShiftType, error) {
	if r.Name != nil {
		t.Name = strings.TrimSpace(*r.Name)
	}
	if r.ClockIn != nil {
		t.ClockIn = *r.ClockIn
	}
	if r.ClockOut != nil {
		t.ClockOut = *r.ClockOut
	}
	if r.IsNextDayCheckout != nil {
		t.IsNextDayCheckout = *r.IsNextDayCheckout
	}
	if r.Active != nil {
		t.Active = *r.Active
	}
	if errs := validateWindow(t.ClockIn, t.ClockOut, t.IsNextDayCheckout); len(errs) > 0 {
		return t, errs
	}
	return t, nil
}

// validateWindow rejects empty windows and overnight shifts that are not
// flagged as next-day checkout.
func validateWindow(clockIn, clockOut string, nextDay bool) validator.ValidationErrors {
	var errs validator.ValidationErrors
	in, okIn := validator.IsValidTime(clockIn)
	out, okOut := validator.IsValidTime(clockOut)
	if !okIn || !okOut {
		return nil
	}
	if !nextDay && !out.After(in) {
		errs.Add("clock_out", "clock_out must be after clock_in unless is_next_day_checkout is set")
	}
	if nextDay && out.After(in) {
		errs.Add("is_next_day_checkout", "is_next_day_checkout requires clock_out to be earlier than or equal to clock_in")
	}
	return errs
}

type ShiftTypeFilter struct {
	ActiveOnly bool `json:"active_only"`
}

type ShiftTypeResponse struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	ClockIn           string `json:"clock_in"`
	ClockOut          string `json:"clock_out"`
	IsNextDayCheckout bool   `json:"is_next_day_checkout"`
	DurationMinutes   int    `json:"duration_minutes"`
	Active            bool   `json:"active"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

func NewShiftTypeResponse(t ShiftType) ShiftTypeResponse {
	return ShiftTypeResponse{
		Code:              t.Code,
		Name:              t.Name,
		ClockIn:           t.ClockIn,
		ClockOut:          t.ClockOut,
		IsNextDayCheckout: t.IsNextDayCheckout,
		DurationMinutes:   t.DurationMinutes(),
		Active:            t.Active,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         t.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateShiftPatternRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Tokens      []string `json:"tokens" validate:"required,min=1,max=366"`
}

func (r *CreateShiftPatternRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Tokens = normalizeTokens(r.Tokens)
	errs := validator.Struct(r)
	errs = append(errs, validateTokenSyntax(r.Tokens)...)
	return errs.OrNil()
}

type UpdateShiftPatternRequest struct {
	ID          string   `json:"-"`
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Tokens      []string `json:"tokens,omitempty" validate:"omitempty,min=1,max=366"`
}

func (r *UpdateShiftPatternRequest) Validate() error {
	r.Tokens = normalizeTokens(r.Tokens)
	errs := validator.Struct(r)

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name cannot be empty")
	}
	if r.Tokens != nil {
		errs = append(errs, validateTokenSyntax(r.Tokens)...)
	}

	return errs.OrNil()
}

func normalizeTokens(tokens []string) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = NormalizeToken(tok)
	}
	return out
}

func validateTokenSyntax(tokens []string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for i, tok := range tokens {
		if IsOff(tok) {
			continue
		}
		if !validator.IsValidShiftCode(tok) {
			errs.Add("tokens["+validator.Itoa(i)+"]", "token must be a shift code or OFF")
		}
	}
	return errs
}

type ShiftPatternResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Tokens      []string `json:"tokens"`
	CycleLength int      `json:"cycle_length"`
	WorkDays    int      `json:"work_days"`
	OffDays     int      `json:"off_days"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func NewShiftPatternResponse(p ShiftPattern) ShiftPatternResponse {
	return ShiftPatternResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Tokens:      p.Tokens,
		CycleLength: p.CycleLength(),
		WorkDays:    p.WorkDays(),
		OffDays:     p.CycleLength() - p.WorkDays(),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
