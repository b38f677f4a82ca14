package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const companyID = "0192f0a1-0000-7000-8000-00000000c0de"

func strPtr(s string) *string { return &s }

func setupReport(t *testing.T) (context.Context, attendance.AttendanceService, string) {
	t.Helper()
	store := memory.NewStore()
	ctx := tenant.WithCompanyID(context.Background(), companyID)

	groups := memory.NewGroupShiftRepository(store)
	g, err := groups.Create(ctx, rotation.GroupShift{CompanyID: companyID, Code: "OPS", Name: "Ops", Active: true})
	require.NoError(t, err)

	for _, e := range []employee.Employee{
		{ID: "emp-1", EmployeeCode: "0001", FullName: "Ayu"},
		{ID: "emp-2", EmployeeCode: "0002", FullName: "Budi"},
	} {
		e.CompanyID = companyID
		e.GroupShiftID = &g.ID
		e.EmploymentStatus = employee.EmploymentStatusActive
		store.PutEmployee(e)
	}

	day := func(emp string, d int, in, out, status string) attendance.ScheduleDay {
		return attendance.ScheduleDay{
			EmployeeID:       emp,
			CompanyID:        companyID,
			Date:             time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC),
			ShiftCode:        strPtr("S1"),
			StandardClockIn:  strPtr("08:00"),
			StandardClockOut: strPtr("16:00"),
			IsWorkingDay:     true,
			ActualClockIn:    strPtr(in),
			ActualClockOut:   strPtr(out),
			Status:           strPtr(status),
		}
	}
	store.PutScheduleDay(day("emp-1", 6, "08:05", "16:00", "present"))
	store.PutScheduleDay(day("emp-1", 7, "--:--", "", "present"))
	store.PutScheduleDay(day("emp-2", 6, "07:55", "15:30", "present"))
	store.PutScheduleDay(day("emp-2", 7, "08:00", "", "present"))
	store.PutScheduleDay(day("emp-2", 8, "", "", "leave"))
	// a later capture replaces the earlier row of the same day
	store.PutScheduleDay(day("emp-2", 6, "09:00", "16:00", "present"))
	// outside the period
	feb := day("emp-1", 1, "10:00", "16:00", "present")
	feb.Date = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	store.PutScheduleDay(feb)

	svc := NewAttendanceService(groups, memory.NewEmployeeRepository(store), memory.NewScheduleDayRepository(store))
	return ctx, svc, g.ID
}

func TestGroupReport(t *testing.T) {
	ctx, svc, groupID := setupReport(t)

	report, err := svc.GroupReport(ctx, groupID, "2025-01")
	require.NoError(t, err)
	require.Len(t, report.Rows, 5)

	first := report.Rows[0]
	assert.Equal(t, "emp-1", first.EmployeeID)
	assert.Equal(t, "Ayu", first.FullName)
	assert.Equal(t, "2025-01-06", first.Date)
	assert.Equal(t, 5, first.LateMinutes)
	assert.Equal(t, "present", first.Status)

	assert.Equal(t, "absent", report.Rows[1].Status, "no punches at all")
	assert.Equal(t, 60, report.Rows[2].LateMinutes, "second write for emp-2 on Jan 6 replaced the first")
	assert.Equal(t, "present", report.Rows[3].Status, "clock-in only stays present")
	assert.Equal(t, "leave", report.Rows[4].Status)

	assert.Equal(t, 5, report.Totals.Rows)
	assert.Equal(t, 3, report.Totals.Present)
	assert.Equal(t, 1, report.Totals.Absent)
	assert.Equal(t, 65, report.Totals.LateMinutes)
	assert.Equal(t, "1.08", report.Totals.LateHours.StringFixed(2))
}

func TestGroupReportErrors(t *testing.T) {
	ctx, svc, groupID := setupReport(t)

	_, err := svc.GroupReport(ctx, "0192f0a1-0000-7000-8000-0000000000ff", "2025-01")
	assert.ErrorIs(t, err, rotation.ErrGroupNotFound)

	_, err = svc.GroupReport(ctx, groupID, "2025-1")
	assert.Error(t, err)
}

func TestDeriveDay(t *testing.T) {
	ctx, svc, _ := setupReport(t)

	row, err := svc.DeriveDay(ctx, "emp-1", "2025-01-07")
	require.NoError(t, err)
	assert.Equal(t, "absent", row.Status)
	assert.Equal(t, 0, row.LateMinutes)

	_, err = svc.DeriveDay(ctx, "emp-1", "2025-01-20")
	assert.ErrorIs(t, err, attendance.ErrScheduleDayNotFound)

	_, err = svc.DeriveDay(ctx, "ghost", "2025-01-06")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestExportGroupReport(t *testing.T) {
	ctx, svc, groupID := setupReport(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportGroupReport(ctx, groupID, "2025-01", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	status, err := f.GetCellValue("Attendance", "I5")
	require.NoError(t, err)
	assert.Equal(t, "absent", status)
	name, err := f.GetCellValue("Attendance", "B4")
	require.NoError(t, err)
	assert.Equal(t, "Ayu", name)
}
