package rotation

import (
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
)

const secondsPerDay = 24 * 60 * 60

// civilDate drops the clock and zone of t, keeping its calendar date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a to b. Both are reduced to UTC
// midnight first, so DST and local offsets never shift the result.
func daysBetween(a, b time.Time) int {
	return int((civilDate(b).Unix() - civilDate(a).Unix()) / secondsPerDay)
}

// CyclePosition returns the index into a pattern of cycleLength tokens that
// applies to date, given the date the cycle starts on. Dates before the
// reference wrap backwards, so the day before it maps to cycleLength-1.
func CyclePosition(referenceDate, date time.Time, cycleLength int) int {
	if cycleLength <= 0 {
		return 0
	}
	offset := daysBetween(referenceDate, date) % cycleLength
	if offset < 0 {
		offset += cycleLength
	}
	return offset
}

// Generate lays pattern over every day of period, aligned on referenceDate.
// It is pure: the same inputs always give the same matrix. Slots after the
// last day of the month stay empty.
func Generate(pattern shift.ShiftPattern, referenceDate time.Time, period rotation.Period) (rotation.MonthlyMatrix, error) {
	n := pattern.CycleLength()
	if n == 0 {
		return rotation.MonthlyMatrix{}, rotation.ErrEmptyPattern
	}

	m := rotation.MonthlyMatrix{
		Period: period,
		Source: rotation.SourceGenerated,
	}
	if pattern.ID != "" {
		id := pattern.ID
		m.PatternID = &id
	}

	for d := 1; d <= period.DaysInMonth(); d++ {
		m.Slots[d-1] = pattern.Tokens[CyclePosition(referenceDate, period.Date(d), n)]
	}
	return m, nil
}
