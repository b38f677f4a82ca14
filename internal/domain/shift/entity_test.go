package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftTypeDurationMinutes(t *testing.T) {
	day := ShiftType{ClockIn: "08:00", ClockOut: "16:00"}
	assert.Equal(t, 480, day.DurationMinutes())

	evening := ShiftType{ClockIn: "16:00", ClockOut: "00:00", IsNextDayCheckout: true}
	assert.Equal(t, 480, evening.DurationMinutes())

	night := ShiftType{ClockIn: "22:00", ClockOut: "06:00", IsNextDayCheckout: true}
	assert.Equal(t, 480, night.DurationMinutes())

	broken := ShiftType{ClockIn: "xx", ClockOut: "06:00"}
	assert.Equal(t, 0, broken.DurationMinutes())
}

func TestShiftPatternCounts(t *testing.T) {
	p := ShiftPattern{Tokens: []string{"S1", "S1", "S2", "OFF", "S2", "OFF", "S3"}}
	assert.Equal(t, 7, p.CycleLength())
	assert.Equal(t, 5, p.WorkDays())
	assert.Equal(t, []string{"S1", "S2", "S3"}, p.Codes())
}

func TestCreateShiftTypeRequestValidate(t *testing.T) {
	req := CreateShiftTypeRequest{Code: " s2 ", Name: "Evening", ClockIn: "16:00", ClockOut: "00:00", IsNextDayCheckout: true}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "S2", req.Code)

	overnight := CreateShiftTypeRequest{Code: "N1", Name: "Night", ClockIn: "22:00", ClockOut: "06:00"}
	err := overnight.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "clock_out")

	reserved := CreateShiftTypeRequest{Code: "off", Name: "Rest", ClockIn: "08:00", ClockOut: "16:00"}
	err = reserved.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestCreateShiftPatternRequestValidate(t *testing.T) {
	req := CreateShiftPatternRequest{Name: "5-2", Tokens: []string{"s1", "S1", "S1", "S1", "S1", "off", "OFF"}}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "OFF", req.Tokens[5])

	empty := CreateShiftPatternRequest{Name: "empty", Tokens: []string{}}
	assert.Error(t, empty.Validate())

	bad := CreateShiftPatternRequest{Name: "bad", Tokens: []string{"S1", "day shift"}}
	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tokens[1]")
}
