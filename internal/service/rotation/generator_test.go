package rotation

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func officePattern() shift.ShiftPattern {
	return shift.ShiftPattern{
		ID:     "0192f0a1-0000-7000-8000-000000000001",
		Name:   "5-2 Office",
		Tokens: []string{"S1", "S1", "S1", "S1", "S1", "OFF", "OFF"},
	}
}

func TestCyclePosition(t *testing.T) {
	ref := date(2025, time.January, 6)

	assert.Equal(t, 0, CyclePosition(ref, ref, 7))
	assert.Equal(t, 4, CyclePosition(ref, date(2025, time.January, 10), 7))
	assert.Equal(t, 6, CyclePosition(ref, date(2025, time.January, 5), 7), "day before reference wraps to n-1")
	assert.Equal(t, 5, CyclePosition(ref, date(2025, time.January, 4), 7))
	assert.Equal(t, 0, CyclePosition(ref, date(2024, time.December, 30), 7))
	assert.Equal(t, 0, CyclePosition(ref, ref, 0))
}

func TestCyclePositionIsPeriodic(t *testing.T) {
	ref := date(2024, time.February, 29)
	for _, n := range []int{1, 3, 7, 10} {
		for off := -40; off <= 40; off++ {
			d := ref.AddDate(0, 0, off)
			for _, k := range []int{-3, -1, 1, 2} {
				shifted := d.AddDate(0, 0, k*n)
				assert.Equal(t, CyclePosition(ref, d, n), CyclePosition(ref, shifted, n),
					"n=%d off=%d k=%d", n, off, k)
			}
		}
	}
}

func TestCyclePositionIgnoresClockAndZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	ref := time.Date(2025, time.March, 1, 23, 30, 0, 0, jakarta)
	d := time.Date(2025, time.March, 3, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, CyclePosition(ref, d, 7))
}

func TestGenerateOfficeJanuary2025(t *testing.T) {
	period := rotation.Period{Year: 2025, Month: time.January}

	m, err := Generate(officePattern(), date(2025, time.January, 6), period)
	require.NoError(t, err)

	assert.Equal(t, rotation.SourceGenerated, m.Source)
	require.NotNil(t, m.PatternID)
	assert.Equal(t, "OFF", m.Day(4))
	assert.Equal(t, "OFF", m.Day(5))
	for d := 6; d <= 10; d++ {
		assert.Equal(t, "S1", m.Day(d), "day %d", d)
	}
	assert.Equal(t, "OFF", m.Day(11))
	assert.Equal(t, "OFF", m.Day(12))
	for d := 13; d <= 17; d++ {
		assert.Equal(t, "S1", m.Day(d), "day %d", d)
	}
	// Jan 1 2025 is a Wednesday, position (1-6) mod 7 = 2.
	assert.Equal(t, "S1", m.Day(1))
	assert.Equal(t, "S1", m.Day(31))
}

func TestGenerateLeavesTrailingSlotsEmpty(t *testing.T) {
	m, err := Generate(officePattern(), date(2024, time.January, 1), rotation.Period{Year: 2024, Month: time.February})
	require.NoError(t, err)

	assert.NotEmpty(t, m.Day(29), "2024 is a leap year")
	assert.Equal(t, "", m.Day(30))
	assert.Equal(t, "", m.Day(31))

	m, err = Generate(officePattern(), date(2024, time.January, 1), rotation.Period{Year: 2025, Month: time.February})
	require.NoError(t, err)
	assert.NotEmpty(t, m.Day(28))
	assert.Equal(t, "", m.Day(29))
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := shift.ShiftPattern{Tokens: []string{"S1", "S1", "S2", "S2", "S3", "S3", "OFF", "OFF"}}
	ref := date(2023, time.June, 17)
	period := rotation.Period{Year: 2025, Month: time.March}

	a, err := Generate(p, ref, period)
	require.NoError(t, err)
	b, err := Generate(p, ref, period)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Nil(t, a.PatternID)
}

func TestGenerateContinuesAcrossMonths(t *testing.T) {
	p := shift.ShiftPattern{Tokens: []string{"S1", "S2", "S3", "OFF"}}
	ref := date(2025, time.January, 1)

	jan, err := Generate(p, ref, rotation.Period{Year: 2025, Month: time.January})
	require.NoError(t, err)
	feb, err := Generate(p, ref, rotation.Period{Year: 2025, Month: time.February})
	require.NoError(t, err)

	// Jan 31 is position 30 mod 4 = 2, so Feb 1 continues at position 3.
	assert.Equal(t, "S3", jan.Day(31))
	assert.Equal(t, "OFF", feb.Day(1))
	assert.Equal(t, "S1", feb.Day(2))
}

func TestGenerateEmptyPattern(t *testing.T) {
	_, err := Generate(shift.ShiftPattern{}, date(2025, time.January, 1), rotation.Period{Year: 2025, Month: time.January})
	assert.ErrorIs(t, err, rotation.ErrInvalidConfiguration)
}
