package shift

import (
	"strings"
	"time"
)

// OffToken marks a rest day inside a pattern or matrix.
const OffToken = "OFF"

// ShiftType is a named working window of one company.
// ClockIn and ClockOut are wall-clock "HH:MM" values. When IsNextDayCheckout
// is set the shift ends on the calendar day after it starts.
type ShiftType struct {
	CompanyID         string
	Code              string
	Name              string
	ClockIn           string
	ClockOut          string
	IsNextDayCheckout bool
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DurationMinutes returns the planned length of the shift.
func (t ShiftType) DurationMinutes() int {
	in, okIn := clockMinutes(t.ClockIn)
	out, okOut := clockMinutes(t.ClockOut)
	if !okIn || !okOut {
		return 0
	}
	if t.IsNextDayCheckout || out < in {
		out += 24 * 60
	}
	return out - in
}

// ShiftPattern is an ordered cycle of shift codes and OFF tokens.
type ShiftPattern struct {
	ID          string
	CompanyID   string
	Name        string
	Description *string
	Tokens      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p ShiftPattern) CycleLength() int {
	return len(p.Tokens)
}

// WorkDays counts the non-OFF tokens of one cycle.
func (p ShiftPattern) WorkDays() int {
	n := 0
	for _, tok := range p.Tokens {
		if !IsOff(tok) {
			n++
		}
	}
	return n
}

// Codes returns the distinct shift codes referenced by the pattern, in order
// of first appearance.
func (p ShiftPattern) Codes() []string {
	return DistinctCodes(p.Tokens)
}

// IsOff reports whether token is the rest-day marker.
func IsOff(token string) bool {
	return token == OffToken
}

// NormalizeToken trims and upper-cases a user-supplied token.
func NormalizeToken(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// DistinctCodes collects the non-empty, non-OFF tokens without duplicates.
func DistinctCodes(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var codes []string
	for _, tok := range tokens {
		if tok == "" || IsOff(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		codes = append(codes, tok)
	}
	return codes
}

func clockMinutes(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
