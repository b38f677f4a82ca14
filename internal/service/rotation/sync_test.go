package rotation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateJanuary(t *testing.T, env *testEnv, g rotation.GroupShift) {
	t.Helper()
	_, err := env.svc.GenerateMatrix(env.ctx, rotation.GenerateMatrixRequest{GroupID: g.ID, Period: "2025-01"})
	require.NoError(t, err)
}

func TestSyncWritesEveryEmployeeDay(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	generateJanuary(t, env, g)
	env.addMember("emp-1", "0001", g.ID)
	env.addMember("emp-2", "0002", g.ID)
	env.addMember("emp-3", "0003", g.ID)

	report, err := env.syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Employees)
	assert.Equal(t, 93, report.Updated)
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.Errors)
	assert.NoError(t, report.Err())
	assert.Equal(t, "2025-01", report.Period)
	assert.NotEmpty(t, report.RunID)

	workday, ok := env.store.ScheduleDay("emp-2", time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.True(t, workday.IsWorkingDay)
	assert.Equal(t, "S1", *workday.ShiftCode)
	assert.Equal(t, "08:00", *workday.StandardClockIn)
	assert.Equal(t, "16:00", *workday.StandardClockOut)

	restday, ok := env.store.ScheduleDay("emp-2", time.Date(2025, time.January, 11, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.False(t, restday.IsWorkingDay)
	assert.Equal(t, "OFF", *restday.ShiftCode)
	assert.Nil(t, restday.StandardClockIn)
	assert.Nil(t, restday.StandardClockOut)
}

func TestSyncIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	generateJanuary(t, env, g)
	env.addMember("emp-1", "0001", g.ID)
	env.addMember("emp-2", "0002", g.ID)

	first, err := env.syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)
	assert.Equal(t, 62, first.Updated)

	second, err := env.syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, 62, second.Skipped)
}

func TestSyncKeepsActualAttendance(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	generateJanuary(t, env, g)
	env.addMember("emp-1", "0001", g.ID)

	jan6 := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	env.store.PutScheduleDay(attendance.ScheduleDay{
		EmployeeID:       "emp-1",
		CompanyID:        testCompanyID,
		Date:             jan6,
		ShiftCode:        strPtr("S3"),
		StandardClockIn:  strPtr("00:00"),
		StandardClockOut: strPtr("08:00"),
		IsWorkingDay:     true,
		ActualClockIn:    strPtr("00:07"),
		ActualClockOut:   strPtr("08:01"),
		Status:           strPtr("present"),
	})

	_, err := env.syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)

	day, ok := env.store.ScheduleDay("emp-1", jan6)
	require.True(t, ok)
	assert.Equal(t, "S1", *day.ShiftCode)
	assert.Equal(t, "08:00", *day.StandardClockIn)
	assert.Equal(t, "00:07", *day.ActualClockIn)
	assert.Equal(t, "08:01", *day.ActualClockOut)
	assert.Equal(t, "present", *day.Status)
}

func TestSyncLeavesEmptySlotsAlone(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	env.addMember("emp-1", "0001", g.ID)

	days := make([]string, 28)
	days[0] = "S1"
	days[1] = "OFF"
	_, err := env.svc.SaveMatrix(env.ctx, rotation.SaveMatrixRequest{GroupID: g.ID, Period: "2025-02", Days: days})
	require.NoError(t, err)

	report, err := env.syncer.Sync(env.ctx, testCompanyID, g.ID, rotation.Period{Year: 2025, Month: time.February})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 0, report.Skipped)

	_, ok := env.store.ScheduleDay("emp-1", time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestSyncSkipsInactiveAndOtherGroups(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	generateJanuary(t, env, g)
	env.addMember("emp-1", "0001", g.ID)
	env.addMember("emp-2", "0002", "0192f0a1-0000-7000-8000-0000000000ff")
	env.store.PutEmployee(employee.Employee{
		ID:               "emp-3",
		CompanyID:        testCompanyID,
		GroupShiftID:     &g.ID,
		EmployeeCode:     "0003",
		EmploymentStatus: employee.EmploymentStatusResigned,
	})

	report, err := env.syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Employees)
	assert.Equal(t, 31, report.Updated)

	jan6 := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	_, ok := env.store.ScheduleDay("emp-2", jan6)
	assert.False(t, ok)
	_, ok = env.store.ScheduleDay("emp-3", jan6)
	assert.False(t, ok)
}

func TestSyncMatrixNotFound(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)

	_, err := env.syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	assert.ErrorIs(t, err, rotation.ErrMatrixNotFound)
}

// failingScheduleRepo fails writes for one employee and can stall another.
type failingScheduleRepo struct {
	attendance.ScheduleDayRepository
	failFor  string
	stallFor string
	writes   atomic.Int64
}

func (r *failingScheduleRepo) UpsertStandardSchedule(ctx context.Context, s attendance.StandardSchedule) error {
	if s.EmployeeID == r.failFor {
		return errors.New("disk full")
	}
	if s.EmployeeID == r.stallFor {
		<-ctx.Done()
		return ctx.Err()
	}
	r.writes.Add(1)
	return r.ScheduleDayRepository.UpsertStandardSchedule(ctx, s)
}

func TestSyncPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	generateJanuary(t, env, g)
	env.addMember("emp-1", "0001", g.ID)
	env.addMember("emp-2", "0002", g.ID)
	env.addMember("emp-3", "0003", g.ID)

	repo := &failingScheduleRepo{ScheduleDayRepository: env.schedule, failFor: "emp-2"}
	syncer := NewSynchronizer(memory.NewTransactor(), env.matrices, env.types, env.employees, repo, SyncConfig{Workers: 2})

	report, err := syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)

	assert.Equal(t, 62, report.Updated)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "emp-2", report.Errors[0].EmployeeID)
	require.NotNil(t, report.Errors[0].Date)
	assert.Equal(t, "2025-01-01", *report.Errors[0].Date)
	assert.Contains(t, report.Errors[0].Message, "disk full")

	batchErr := report.Err()
	assert.ErrorIs(t, batchErr, rotation.ErrPartialBatchFailure)
	var partial *rotation.PartialBatchFailureError
	require.ErrorAs(t, batchErr, &partial)
	assert.Equal(t, 3, partial.Report.Employees)
}

func TestSyncEmployeeTimeout(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	generateJanuary(t, env, g)
	env.addMember("emp-1", "0001", g.ID)
	env.addMember("emp-2", "0002", g.ID)

	repo := &failingScheduleRepo{ScheduleDayRepository: env.schedule, stallFor: "emp-1"}
	syncer := NewSynchronizer(memory.NewTransactor(), env.matrices, env.types, env.employees, repo,
		SyncConfig{Workers: 2, EmployeeTimeout: 50 * time.Millisecond})

	report, err := syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, "emp-1", report.Errors[0].EmployeeID)
	assert.Contains(t, report.Errors[0].Message, "timed out")
	assert.Equal(t, 31, report.Updated)
}

func TestSyncBoundsConcurrency(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	generateJanuary(t, env, g)
	for i := 0; i < 20; i++ {
		env.addMember("emp-"+string(rune('a'+i)), "00"+string(rune('a'+i)), g.ID)
	}

	repo := &concurrencyProbe{ScheduleDayRepository: env.schedule}
	syncer := NewSynchronizer(memory.NewTransactor(), env.matrices, env.types, env.employees, repo, SyncConfig{Workers: 3})

	report, err := syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)
	assert.Equal(t, 20*31, report.Updated)
	assert.LessOrEqual(t, repo.peak.Load(), int64(3))
}

type concurrencyProbe struct {
	attendance.ScheduleDayRepository
	inFlight atomic.Int64
	peak     atomic.Int64
}

func (p *concurrencyProbe) UpsertStandardSchedule(ctx context.Context, s attendance.StandardSchedule) error {
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(100 * time.Microsecond)
	return p.ScheduleDayRepository.UpsertStandardSchedule(ctx, s)
}

func TestSyncRefusesScheduleOfAnotherCompany(t *testing.T) {
	env := newTestEnv(t)
	g := env.officeGroup(t)
	generateJanuary(t, env, g)
	env.addMember("emp-1", "0001", g.ID)
	env.addMember("emp-2", "0002", g.ID)

	foreignDate := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	env.store.PutScheduleDay(attendance.ScheduleDay{
		EmployeeID: "emp-2",
		CompanyID:  "0192f0a1-0000-7000-8000-0000000000ff",
		Date:       foreignDate,
		ShiftCode:  strPtr("N1"),
	})

	report, err := env.syncer.Sync(env.ctx, testCompanyID, g.ID, jan2025())
	require.NoError(t, err)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, "emp-2", report.Errors[0].EmployeeID)
	require.NotNil(t, report.Errors[0].Date)
	assert.Equal(t, "2025-01-15", *report.Errors[0].Date)
	assert.Contains(t, report.Errors[0].Message, "another company")

	foreign, ok := env.store.ScheduleDay("emp-2", foreignDate)
	require.True(t, ok)
	assert.Equal(t, "N1", *foreign.ShiftCode)
}
