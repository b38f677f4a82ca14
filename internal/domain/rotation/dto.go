package rotation

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateGroupShiftRequest struct {
	Code                 string  `json:"code" validate:"required,max=10"`
	Name                 string  `json:"name" validate:"required,max=100"`
	Active               *bool   `json:"active"`
	PatternID            *string `json:"pattern_id,omitempty"`
	PatternReferenceDate *string `json:"pattern_reference_date,omitempty" validate:"omitempty,isodate"`
}

func (r *CreateGroupShiftRequest) Validate() error {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
	errs := validator.Struct(r)
	errs = append(errs, validatePatternBinding(r.PatternID, r.PatternReferenceDate)...)
	return errs.OrNil()
}

type UpdateGroupShiftRequest struct {
	ID                   string  `json:"-"`
	Name                 *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Active               *bool   `json:"active,omitempty"`
	PatternID            *string `json:"pattern_id,omitempty"`
	PatternReferenceDate *string `json:"pattern_reference_date,omitempty" validate:"omitempty,isodate"`
	// ClearPattern unbinds the pattern; it wins over PatternID.
	ClearPattern bool `json:"clear_pattern"`
}

func (r *UpdateGroupShiftRequest) Validate() error {
	errs := validator.Struct(r)
	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name cannot be empty")
	}
	if !r.ClearPattern {
		errs = append(errs, validatePatternBinding(r.PatternID, r.PatternReferenceDate)...)
	}
	return errs.OrNil()
}

// A pattern is only usable together with the date its cycle starts on. A date
// alone is kept for a later binding.
func validatePatternBinding(patternID, referenceDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	hasID := patternID != nil && !validator.IsEmpty(*patternID)
	hasDate := referenceDate != nil && !validator.IsEmpty(*referenceDate)
	if hasID && !validator.IsValidUUID(*patternID) {
		errs.Add("pattern_id", "pattern_id must be a valid UUID")
	}
	if hasID && !hasDate {
		errs.Add("pattern_reference_date", "pattern_reference_date is required when pattern_id is set")
	}
	return errs
}

type GroupShiftFilter struct {
	ActiveOnly bool `json:"active_only"`
}

type GroupShiftResponse struct {
	ID                   string  `json:"id"`
	Code                 string  `json:"code"`
	Name                 string  `json:"name"`
	Active               bool    `json:"active"`
	PatternID            *string `json:"pattern_id"`
	PatternReferenceDate *string `json:"pattern_reference_date"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

func NewGroupShiftResponse(g GroupShift) GroupShiftResponse {
	resp := GroupShiftResponse{
		ID:        g.ID,
		Code:      g.Code,
		Name:      g.Name,
		Active:    g.Active,
		PatternID: g.PatternID,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
	if g.PatternReferenceDate != nil {
		s := g.PatternReferenceDate.Format("2006-01-02")
		resp.PatternReferenceDate = &s
	}
	return resp
}

type MemberRequest struct {
	GroupID    string `json:"-"`
	EmployeeID string `json:"-"`
}

func (r *MemberRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.GroupID) {
		errs.Add("group_id", "group_id must be a valid UUID")
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	return errs.OrNil()
}

type MemberResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

type SaveMatrixRequest struct {
	GroupID string `json:"-"`
	Period  string `json:"-"`
	// Days has one entry per day of the month: a shift code, "OFF" or "" for unset.
	Days []string `json:"days"`
	// Version enables optimistic locking when set.
	Version *int `json:"version,omitempty" validate:"omitempty,gte=1"`
}

func (r *SaveMatrixRequest) Validate() (Period, error) {
	errs := validator.Struct(r)
	p, perr := ParsePeriod(r.Period)
	if perr != nil {
		errs.Add("period", "period must be in YYYY-MM format")
	}
	if !validator.IsValidUUID(r.GroupID) {
		errs.Add("group_id", "group_id must be a valid UUID")
	}
	if perr == nil && len(r.Days) != p.DaysInMonth() {
		errs.Add("days", "days must contain exactly "+validator.Itoa(p.DaysInMonth())+" entries for "+p.String())
	}
	for i, d := range r.Days {
		d = shift.NormalizeToken(d)
		r.Days[i] = d
		if d == "" || shift.IsOff(d) {
			continue
		}
		if !validator.IsValidShiftCode(d) {
			errs.Add("days["+validator.Itoa(i)+"]", "day must be a shift code, OFF or empty")
		}
	}
	return p, errs.OrNil()
}

type GenerateMatrixRequest struct {
	GroupID          string `json:"-"`
	Period           string `json:"-"`
	ConfirmOverwrite bool   `json:"confirm_overwrite"`
}

func (r *GenerateMatrixRequest) Validate() (Period, error) {
	return validateGroupPeriod(r.GroupID, r.Period)
}

type SyncMatrixRequest struct {
	GroupID string `json:"-"`
	Period  string `json:"-"`
	Confirm bool   `json:"confirm"`
}

func (r *SyncMatrixRequest) Validate() (Period, error) {
	p, err := validateGroupPeriod(r.GroupID, r.Period)
	if err != nil {
		return p, err
	}
	if !r.Confirm {
		return p, validator.ValidationErrors{{Field: "confirm", Message: "sync overwrites planned schedules and must be confirmed"}}
	}
	return p, nil
}

type PreviewPatternRequest struct {
	PatternID     string `json:"-"`
	Period        string `json:"period" validate:"required,period"`
	ReferenceDate string `json:"reference_date" validate:"required,isodate"`
}

func (r *PreviewPatternRequest) Validate() (Period, time.Time, error) {
	errs := validator.Struct(r)
	if !validator.IsValidUUID(r.PatternID) {
		errs.Add("pattern_id", "pattern_id must be a valid UUID")
	}
	if len(errs) > 0 {
		return Period{}, time.Time{}, errs
	}
	p, _ := ParsePeriod(r.Period)
	ref, _ := validator.IsValidDate(r.ReferenceDate)
	return p, ref, nil
}

func validateGroupPeriod(groupID, period string) (Period, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(groupID) {
		errs.Add("group_id", "group_id must be a valid UUID")
	}
	p, err := ParsePeriod(period)
	if err != nil {
		errs.Add("period", "period must be in YYYY-MM format")
	}
	return p, errs.OrNil()
}

type MatrixDayResponse struct {
	Day      int     `json:"day"`
	Date     string  `json:"date"`
	Weekday  string  `json:"weekday"`
	Value    string  `json:"value"`
	ClockIn  *string `json:"clock_in,omitempty"`
	ClockOut *string `json:"clock_out,omitempty"`
}

type MatrixSummary struct {
	WorkDays     int             `json:"work_days"`
	OffDays      int             `json:"off_days"`
	EmptyDays    int             `json:"empty_days"`
	PlannedHours decimal.Decimal `json:"planned_hours"`
	ByShift      map[string]int  `json:"by_shift"`
}

type MatrixResponse struct {
	ID           string              `json:"id"`
	GroupShiftID string              `json:"group_shift_id"`
	Period       string              `json:"period"`
	Source       MatrixSource        `json:"source"`
	PatternID    *string             `json:"pattern_id"`
	Version      int                 `json:"version"`
	Days         []MatrixDayResponse `json:"days"`
	Summary      MatrixSummary       `json:"summary"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}

type PreviewResponse struct {
	PatternID     string              `json:"pattern_id"`
	Period        string              `json:"period"`
	ReferenceDate string              `json:"reference_date"`
	Days          []MatrixDayResponse `json:"days"`
	Summary       MatrixSummary       `json:"summary"`
}
