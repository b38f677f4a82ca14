package rotation

import (
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// Summarize counts the month's days and sums planned hours per the shift
// types' durations. Codes missing from types count as work days with no hours.
func Summarize(m rotation.MonthlyMatrix, types map[string]shift.ShiftType) rotation.MatrixSummary {
	summary := rotation.MatrixSummary{
		PlannedHours: decimal.Zero,
		ByShift:      map[string]int{},
	}
	minutes := 0
	for d := 1; d <= m.Period.DaysInMonth(); d++ {
		v := m.Day(d)
		switch {
		case v == "":
			summary.EmptyDays++
		case shift.IsOff(v):
			summary.OffDays++
		default:
			summary.WorkDays++
			summary.ByShift[v]++
			if t, ok := types[v]; ok {
				minutes += t.DurationMinutes()
			}
		}
	}
	summary.PlannedHours = decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2)
	return summary
}

func buildDays(m rotation.MonthlyMatrix, types map[string]shift.ShiftType) []rotation.MatrixDayResponse {
	n := m.Period.DaysInMonth()
	days := make([]rotation.MatrixDayResponse, 0, n)
	for d := 1; d <= n; d++ {
		date := m.Period.Date(d)
		day := rotation.MatrixDayResponse{
			Day:     d,
			Date:    date.Format("2006-01-02"),
			Weekday: date.Weekday().String(),
			Value:   m.Day(d),
		}
		if t, ok := types[day.Value]; ok {
			in, out := t.ClockIn, t.ClockOut
			day.ClockIn, day.ClockOut = &in, &out
		}
		days = append(days, day)
	}
	return days
}
