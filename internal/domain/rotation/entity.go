package rotation

import (
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
)

// MaxSlots is the number of day cells in a monthly matrix.
const MaxSlots = 31

// GroupShift is a team of employees rotating on the same calendar.
type GroupShift struct {
	ID                   string
	CompanyID            string
	Code                 string
	Name                 string
	Active               bool
	PatternID            *string
	PatternReferenceDate *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// HasPattern reports whether the group can be generated from a pattern.
func (g GroupShift) HasPattern() bool {
	return g.PatternID != nil && g.PatternReferenceDate != nil
}

type MatrixSource string

const (
	SourceGenerated MatrixSource = "generated"
	SourceManual    MatrixSource = "manual"
)

// Slots holds one value per day of month; index 0 is day 1.
// An empty string is an unset day, "OFF" is a rest day, anything else is a
// shift code.
type Slots [MaxSlots]string

// MonthlyMatrix is the planned calendar of one group for one month.
type MonthlyMatrix struct {
	ID           string
	CompanyID    string
	GroupShiftID string
	Period       Period
	Slots        Slots
	Source       MatrixSource
	PatternID    *string
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Day returns the slot for day-of-month d (1-based).
func (m MonthlyMatrix) Day(d int) string {
	if d < 1 || d > MaxSlots {
		return ""
	}
	return m.Slots[d-1]
}

// Codes lists the distinct shift codes within the month's valid days.
func (m MonthlyMatrix) Codes() []string {
	seen := map[string]struct{}{}
	var codes []string
	for d := 1; d <= m.Period.DaysInMonth(); d++ {
		v := m.Day(d)
		if v == "" || shift.IsOff(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		codes = append(codes, v)
	}
	return codes
}

// SlotList converts the fixed array to a slice, nil for empty days, which
// is how matrices are stored.
func (s Slots) SlotList() []*string {
	out := make([]*string, MaxSlots)
	for i, v := range s {
		if v != "" {
			v := v
			out[i] = &v
		}
	}
	return out
}

// SlotsFromList is the inverse of SlotList.
func SlotsFromList(list []*string) Slots {
	var s Slots
	for i, v := range list {
		if i >= MaxSlots {
			break
		}
		if v != nil {
			s[i] = *v
		}
	}
	return s
}
