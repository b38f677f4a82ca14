package attendance

import (
	"time"
)

// Status values recorded on a schedule day. Other values (leave, sick, ...)
// are written by attendance capture and pass through untouched.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// ClockPlaceholder is what attendance capture stores for a missing punch.
const ClockPlaceholder = "--:--"

// ScheduleDay is one employee's row for one calendar day. The standard
// fields are owned by matrix sync; the actual fields and Status are owned by
// attendance capture.
type ScheduleDay struct {
	EmployeeID       string
	CompanyID        string
	Date             time.Time
	ShiftCode        *string
	StandardClockIn  *string
	StandardClockOut *string
	IsWorkingDay     bool
	ActualClockIn    *string
	ActualClockOut   *string
	Status           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Standard extracts the sync-owned part of the row.
func (d ScheduleDay) Standard() StandardSchedule {
	return StandardSchedule{
		EmployeeID:   d.EmployeeID,
		CompanyID:    d.CompanyID,
		Date:         d.Date,
		ShiftCode:    d.ShiftCode,
		ClockIn:      d.StandardClockIn,
		ClockOut:     d.StandardClockOut,
		IsWorkingDay: d.IsWorkingDay,
	}
}

// StandardSchedule is the planned shift written for one employee-day.
// Rest days carry the OFF code with nil clock times and IsWorkingDay false.
type StandardSchedule struct {
	EmployeeID   string
	CompanyID    string
	Date         time.Time
	ShiftCode    *string
	ClockIn      *string
	ClockOut     *string
	IsWorkingDay bool
}

// SameAs compares the planned values, ignoring identity fields.
func (s StandardSchedule) SameAs(o StandardSchedule) bool {
	return eqPtr(s.ShiftCode, o.ShiftCode) &&
		eqPtr(s.ClockIn, o.ClockIn) &&
		eqPtr(s.ClockOut, o.ClockOut) &&
		s.IsWorkingDay == o.IsWorkingDay
}

// Actual is the read-only view of captured attendance for one day.
type Actual struct {
	ClockIn  string
	ClockOut string
	Status   string
}

// Actual returns the captured punches with nil fields as empty strings.
func (d ScheduleDay) Actual() Actual {
	return Actual{
		ClockIn:  StringValue(d.ActualClockIn),
		ClockOut: StringValue(d.ActualClockOut),
		Status:   StringValue(d.Status),
	}
}

// Record is the input of attendance derivation.
type Record struct {
	StandardClockIn  string
	StandardClockOut string
	ActualClockIn    string
	ActualClockOut   string
	Status           string
}

func eqPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// StringValue returns *p, or "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
