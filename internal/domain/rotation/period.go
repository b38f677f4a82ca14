package rotation

import (
	"fmt"
	"time"
)

// Period identifies a calendar month, e.g. 2025-01.
type Period struct {
	Year  int
	Month time.Month
}

func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil || len(s) != 7 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// PeriodOf returns the month containing t, using t's own calendar date.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// DaysInMonth handles leap years through time.Date normalization.
func (p Period) DaysInMonth() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns day d of the month at UTC midnight.
func (p Period) Date(d int) time.Time {
	return time.Date(p.Year, p.Month, d, 0, 0, 0, 0, time.UTC)
}

func (p Period) FirstDay() time.Time {
	return p.Date(1)
}

func (p Period) LastDay() time.Time {
	return p.Date(p.DaysInMonth())
}

func (p Period) Next() Period {
	return PeriodOf(p.Date(1).AddDate(0, 1, 0))
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
