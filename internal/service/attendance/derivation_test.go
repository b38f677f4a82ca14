package attendance

import (
	"testing"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"08:05", 485, true},
		{" 23:59 ", 1439, true},
		{"8:5", 485, true},
		{"--:--", 0, false},
		{"", 0, false},
		{"08", 0, false},
		{"08:00:00", 0, false},
		{"aa:bb", 0, false},
		{"24:00", 0, false},
		{"12:60", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseClock(c.in)
		assert.Equal(t, c.ok, ok, "ParseClock(%q) ok", c.in)
		assert.Equal(t, c.want, got, "ParseClock(%q)", c.in)
	}
}

func TestLateness(t *testing.T) {
	assert.Equal(t, 0, Lateness("08:00", "08:00"))
	assert.Equal(t, 5, Lateness("08:00", "08:05"))
	assert.Equal(t, 0, Lateness("08:00", "07:55"))
	assert.Equal(t, 0, Lateness("08:00", ""))
	assert.Equal(t, 0, Lateness("08:00", "--:--"))
	assert.Equal(t, 0, Lateness("garbage", "09:00"))
}

func TestEarliness(t *testing.T) {
	assert.Equal(t, 0, Earliness("16:00", "16:00"))
	assert.Equal(t, 30, Earliness("16:00", "15:30"))
	assert.Equal(t, 0, Earliness("16:00", "16:45"))
	assert.Equal(t, 0, Earliness("", "15:00"))
}

func TestSanitizeStatus(t *testing.T) {
	cases := []struct {
		name string
		rec  attendance.Record
		want string
	}{
		{"placeholder and empty", attendance.Record{Status: "present", ActualClockIn: "--:--", ActualClockOut: ""}, "absent"},
		{"clock-in only", attendance.Record{Status: "present", ActualClockIn: "08:00", ActualClockOut: ""}, "present"},
		{"clock-out only", attendance.Record{Status: "present", ActualClockIn: "", ActualClockOut: "16:00"}, "present"},
		{"both punches", attendance.Record{Status: "present", ActualClockIn: "08:00", ActualClockOut: "16:00"}, "present"},
		{"case insensitive", attendance.Record{Status: "PRESENT", ActualClockIn: " ", ActualClockOut: "--:--"}, "absent"},
		{"leave untouched", attendance.Record{Status: "leave"}, "leave"},
		{"empty status untouched", attendance.Record{}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SanitizeStatus(c.rec))
		})
	}
}

func TestDerive(t *testing.T) {
	d := Derive(attendance.Record{
		StandardClockIn:  "08:00",
		StandardClockOut: "16:00",
		ActualClockIn:    "08:12",
		ActualClockOut:   "15:50",
		Status:           "present",
	})
	assert.Equal(t, Derived{LateMinutes: 12, EarlyMinutes: 10, Status: "present"}, d)
}
