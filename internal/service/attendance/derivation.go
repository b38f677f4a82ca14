package attendance

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
)

// ParseClock converts "HH:MM" into minutes since midnight. Anything else,
// including the "--:--" placeholder, reports ok=false.
func ParseClock(s string) (minutes int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// Lateness is how many minutes actualIn falls after standardIn. A missing or
// malformed value on either side yields 0.
func Lateness(standardIn, actualIn string) int {
	std, ok1 := ParseClock(standardIn)
	act, ok2 := ParseClock(actualIn)
	if !ok1 || !ok2 {
		return 0
	}
	return max(0, act-std)
}

// Earliness is how many minutes actualOut falls before standardOut, with the
// same missing-value policy as Lateness.
func Earliness(standardOut, actualOut string) int {
	std, ok1 := ParseClock(standardOut)
	act, ok2 := ParseClock(actualOut)
	if !ok1 || !ok2 {
		return 0
	}
	return max(0, std-act)
}

// IsBlankClock reports whether a punch was never recorded: empty or made only
// of placeholder characters such as "--:--".
func IsBlankClock(s string) bool {
	return strings.Trim(s, " -:") == ""
}

// SanitizeStatus downgrades "present" to "absent" when neither punch exists.
// Partial punches keep "present"; every other status is returned unchanged.
func SanitizeStatus(r attendance.Record) string {
	if !strings.EqualFold(strings.TrimSpace(r.Status), attendance.StatusPresent) {
		return r.Status
	}
	if IsBlankClock(r.ActualClockIn) && IsBlankClock(r.ActualClockOut) {
		return attendance.StatusAbsent
	}
	return r.Status
}

// Derived is the per-record result used by reports and exports.
type Derived struct {
	LateMinutes  int
	EarlyMinutes int
	Status       string
}

func Derive(r attendance.Record) Derived {
	return Derived{
		LateMinutes:  Lateness(r.StandardClockIn, r.ActualClockIn),
		EarlyMinutes: Earliness(r.StandardClockOut, r.ActualClockOut),
		Status:       SanitizeStatus(r),
	}
}
