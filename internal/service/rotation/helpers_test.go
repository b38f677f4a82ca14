package rotation

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "0192f0a1-0000-7000-8000-00000000c0de"

type testEnv struct {
	ctx       context.Context
	store     *memory.Store
	types     shift.ShiftTypeRepository
	patterns  shift.ShiftPatternRepository
	groups    rotation.GroupShiftRepository
	matrices  rotation.MatrixRepository
	employees employee.EmployeeRepository
	schedule  attendance.ScheduleDayRepository
	syncer    *Synchronizer
	svc       rotation.RotationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	env := &testEnv{
		ctx:       tenant.WithCompanyID(context.Background(), testCompanyID),
		store:     store,
		types:     memory.NewShiftTypeRepository(store),
		patterns:  memory.NewShiftPatternRepository(store),
		groups:    memory.NewGroupShiftRepository(store),
		matrices:  memory.NewMatrixRepository(store),
		employees: memory.NewEmployeeRepository(store),
		schedule:  memory.NewScheduleDayRepository(store),
	}
	env.syncer = NewSynchronizer(memory.NewTransactor(), env.matrices, env.types, env.employees, env.schedule,
		SyncConfig{Workers: 4, EmployeeTimeout: 5 * time.Second})
	env.svc = NewRotationService(env.groups, env.matrices, env.types, env.patterns, env.employees, env.syncer)

	for _, st := range []shift.ShiftType{
		{Code: "S1", Name: "Morning", ClockIn: "08:00", ClockOut: "16:00"},
		{Code: "S2", Name: "Evening", ClockIn: "16:00", ClockOut: "00:00", IsNextDayCheckout: true},
		{Code: "S3", Name: "Night", ClockIn: "00:00", ClockOut: "08:00"},
	} {
		st.CompanyID = testCompanyID
		st.Active = true
		_, err := env.types.Create(env.ctx, st)
		require.NoError(t, err)
	}
	return env
}

// officeGroup creates a 5-2 pattern anchored on Monday 2025-01-06 and a group bound to it.
func (e *testEnv) officeGroup(t *testing.T) rotation.GroupShift {
	t.Helper()
	p, err := e.patterns.Create(e.ctx, shift.ShiftPattern{
		CompanyID: testCompanyID,
		Name:      "5-2 Office",
		Tokens:    []string{"S1", "S1", "S1", "S1", "S1", "OFF", "OFF"},
	})
	require.NoError(t, err)

	ref := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	g, err := e.groups.Create(e.ctx, rotation.GroupShift{
		CompanyID:            testCompanyID,
		Code:                 "OPS-A",
		Name:                 "Operations A",
		Active:               true,
		PatternID:            &p.ID,
		PatternReferenceDate: &ref,
	})
	require.NoError(t, err)
	return g
}

func (e *testEnv) addMember(id, code, groupID string) {
	e.store.PutEmployee(employee.Employee{
		ID:               id,
		CompanyID:        testCompanyID,
		GroupShiftID:     &groupID,
		EmployeeCode:     code,
		FullName:         "Employee " + code,
		EmploymentType:   employee.EmploymentTypePermanent,
		EmploymentStatus: employee.EmploymentStatusActive,
	})
}

func jan2025() rotation.Period {
	return rotation.Period{Year: 2025, Month: time.January}
}

func strPtr(s string) *string {
	return &s
}
