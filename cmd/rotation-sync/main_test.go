package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/app"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/config"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

func TestParseFlags_DefaultsToNextMonth(t *testing.T) {
	opts, err := parseFlags([]string{"--all"}, testNow)
	require.NoError(t, err)
	assert.True(t, opts.all)
	assert.Equal(t, "2025-02", opts.period.String())
}

func TestParseFlags_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing group", []string{"--company", "c1", "--sync", "--yes"}},
		{"nothing to do", []string{"--company", "c1", "--group", "g1"}},
		{"sync without yes", []string{"--company", "c1", "--group", "g1", "--sync"}},
		{"overwrite without generate", []string{"--company", "c1", "--group", "g1", "--sync", "--overwrite", "--yes"}},
		{"overwrite without yes", []string{"--company", "c1", "--group", "g1", "--generate", "--overwrite"}},
		{"bad period", []string{"--all", "--period", "2025-13"}},
		{"all with group", []string{"--all", "--group", "g1"}},
		{"stray argument", []string{"--all", "extra"}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, testNow)
			var usage usageError
			assert.ErrorAs(t, err, &usage)
		})
	}
}

func TestParseFlags_GenerateOnlyNeedsNoConfirmation(t *testing.T) {
	opts, err := parseFlags([]string{"--company", "c1", "--group", "g1", "--generate", "--period", "2025-03"}, testNow)
	require.NoError(t, err)
	assert.True(t, opts.generate)
	assert.False(t, opts.sync)
	assert.Equal(t, "2025-03", opts.period.String())
}

func TestExecute_GenerateAndSync(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{App: config.AppConfig{StorageType: config.StorageMemory}}
	repos, closeFn, err := app.OpenRepositories(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()
	services := app.NewServices(repos, config.SyncConfig{Workers: 2, EmployeeTimeout: 5 * time.Second})

	companyID := uuid.Must(uuid.NewV7()).String()
	tctx := tenant.WithCompanyID(ctx, companyID)

	_, err = services.Shift.CreateShiftType(tctx, shift.CreateShiftTypeRequest{
		Code: "S1", Name: "Morning", ClockIn: "08:00", ClockOut: "16:00",
	})
	require.NoError(t, err)
	pattern, err := services.Shift.CreateShiftPattern(tctx, shift.CreateShiftPatternRequest{
		Name: "Two on", Tokens: []string{"S1", "S1", "OFF"},
	})
	require.NoError(t, err)
	ref := "2025-01-01"
	group, err := services.Rotation.CreateGroup(tctx, rotation.CreateGroupShiftRequest{
		Code: "OPS", Name: "Ops", PatternID: &pattern.ID, PatternReferenceDate: &ref,
	})
	require.NoError(t, err)
	empID := uuid.Must(uuid.NewV7()).String()
	repos.Store.PutEmployee(employee.Employee{
		ID: empID, CompanyID: companyID, EmployeeCode: "E1", FullName: "Kim",
		EmploymentStatus: employee.EmploymentStatusActive,
	})
	require.NoError(t, services.Rotation.AssignMember(tctx, rotation.MemberRequest{GroupID: group.ID, EmployeeID: empID}))

	opts, err := parseFlags([]string{
		"--company", companyID, "--group", group.ID, "--period", "2025-02",
		"--generate", "--sync", "--yes",
	}, testNow)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, execute(ctx, opts, repos, services, &out))

	var result struct {
		Matrix struct {
			Version int `json:"version"`
		} `json:"matrix"`
		Sync struct {
			Employees int `json:"employees"`
			Updated   int `json:"updated"`
		} `json:"sync"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 1, result.Matrix.Version)
	assert.Equal(t, 1, result.Sync.Employees)
	assert.Equal(t, 28, result.Sync.Updated)

	// A second generate without --overwrite leaves the matrix alone.
	opts.sync = false
	out.Reset()
	err = execute(ctx, opts, repos, services, &out)
	assert.ErrorIs(t, err, rotation.ErrOverwriteNotConfirmed)
}
