package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/repository/memory"
	shiftService "github.com/cmlabs-hris/hris-shift-rotation/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	f, err := Defaults()
	require.NoError(t, err)

	require.Len(t, f.ShiftTypes, 3)
	assert.Equal(t, "S2", f.ShiftTypes[1].Code)
	assert.True(t, f.ShiftTypes[1].IsNextDayCheckout)

	require.Len(t, f.Patterns, 2)
	assert.Equal(t, "5-2 Office", f.Patterns[0].Name)
	assert.Equal(t, []string{"S1", "S1", "S1", "S1", "S1", "OFF", "OFF"}, f.Patterns[0].Tokens)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("shift_types:\n  - code: S1\n    colour: red\n"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shift_types:
  - code: D
    name: Day
    clock_in: "07:00"
    clock_out: "19:00"
patterns:
  - name: Two on two off
    tokens: [D, D, OFF, OFF]
`), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.ShiftTypes, 1)
	assert.Equal(t, []string{"D", "D", "OFF", "OFF"}, f.Patterns[0].Tokens)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed_Idempotent(t *testing.T) {
	store := memory.NewStore()
	svc := shiftService.NewShiftService(memory.NewTransactor(), memory.NewShiftTypeRepository(store), memory.NewShiftPatternRepository(store))
	ctx := tenant.WithCompanyID(context.Background(), "0192f0a1-0000-7000-8000-00000000c0de")

	f, err := Defaults()
	require.NoError(t, err)

	first, err := Seed(ctx, svc, f)
	require.NoError(t, err)
	assert.Equal(t, Result{TypesCreated: 3, PatternsCreated: 2}, first)

	second, err := Seed(ctx, svc, f)
	require.NoError(t, err)
	assert.Equal(t, Result{TypesExisting: 3, PatternsExisting: 2}, second)

	types, err := svc.ListShiftTypes(ctx, shift.ShiftTypeFilter{})
	require.NoError(t, err)
	assert.Len(t, types, 3)
}

func TestSeed_UnknownTokenFails(t *testing.T) {
	store := memory.NewStore()
	svc := shiftService.NewShiftService(memory.NewTransactor(), memory.NewShiftTypeRepository(store), memory.NewShiftPatternRepository(store))
	ctx := tenant.WithCompanyID(context.Background(), "0192f0a1-0000-7000-8000-00000000c0de")

	_, err := Seed(ctx, svc, Fixtures{
		Patterns: []PatternFixture{{Name: "Broken", Tokens: []string{"NOPE"}}},
	})
	assert.Error(t, err)
}
