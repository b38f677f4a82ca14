package attendance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/export"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type attendanceServiceImpl struct {
	groupRepo    rotation.GroupShiftRepository
	employeeRepo employee.EmployeeRepository
	scheduleRepo attendance.ScheduleDayRepository
}

func NewAttendanceService(
	groupRepo rotation.GroupShiftRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo attendance.ScheduleDayRepository,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		groupRepo:    groupRepo,
		employeeRepo: employeeRepo,
		scheduleRepo: scheduleRepo,
	}
}

// GroupReport implements attendance.AttendanceService.
func (s *attendanceServiceImpl) GroupReport(ctx context.Context, groupID, period string) (attendance.ReportResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return attendance.ReportResponse{}, err
	}
	p, err := rotation.ParsePeriod(period)
	if err != nil {
		return attendance.ReportResponse{}, validator.ValidationErrors{{Field: "period", Message: "period must be in YYYY-MM format"}}
	}
	if !validator.IsValidUUID(groupID) {
		return attendance.ReportResponse{}, rotation.ErrGroupNotFound
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID, companyID); err != nil {
		return attendance.ReportResponse{}, err
	}

	members, err := s.employeeRepo.ActiveMembersOf(ctx, companyID, groupID)
	if err != nil {
		return attendance.ReportResponse{}, fmt.Errorf("failed to load group roster: %w", err)
	}
	byID := make(map[string]employee.Employee, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	days, err := s.scheduleRepo.ListByEmployeesAndPeriod(ctx, companyID, ids, p.FirstDay(), p.LastDay())
	if err != nil {
		return attendance.ReportResponse{}, fmt.Errorf("failed to list schedule days: %w", err)
	}

	resp := attendance.ReportResponse{
		GroupShiftID: groupID,
		Period:       p.String(),
		Rows:         make([]attendance.ReportRow, 0, len(days)),
	}
	for _, d := range days {
		row := buildRow(byID[d.EmployeeID], d)
		resp.Rows = append(resp.Rows, row)
		addToTotals(&resp.Totals, row)
	}
	resp.Totals.LateHours = decimal.NewFromInt(int64(resp.Totals.LateMinutes)).Div(decimal.NewFromInt(60)).Round(2)
	return resp, nil
}

// DeriveDay implements attendance.AttendanceService.
func (s *attendanceServiceImpl) DeriveDay(ctx context.Context, employeeID, date string) (attendance.ReportRow, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return attendance.ReportRow{}, err
	}
	day, ok := validator.IsValidDate(date)
	if !ok {
		return attendance.ReportRow{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.ReportRow{}, err
	}

	scheduled, err := s.scheduleRepo.GetByEmployeeAndDate(ctx, emp.ID, day, companyID)
	if err != nil {
		return attendance.ReportRow{}, fmt.Errorf("failed to get schedule day: %w", err)
	}
	if scheduled == nil {
		return attendance.ReportRow{}, attendance.ErrScheduleDayNotFound
	}
	actual, err := s.scheduleRepo.GetActual(ctx, emp.ID, day, companyID)
	if err != nil {
		return attendance.ReportRow{}, fmt.Errorf("failed to get actual attendance: %w", err)
	}
	scheduled.ActualClockIn, scheduled.ActualClockOut, scheduled.Status = &actual.ClockIn, &actual.ClockOut, &actual.Status
	return buildRow(emp, *scheduled), nil
}

// ExportGroupReport implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ExportGroupReport(ctx context.Context, groupID, period string, w io.Writer) error {
	report, err := s.GroupReport(ctx, groupID, period)
	if err != nil {
		return err
	}

	table := export.Table{
		Sheet: "Attendance",
		Title: "Attendance " + report.Period,
		Headers: []string{
			"Employee Code", "Name", "Date", "Shift",
			"Standard In", "Standard Out", "Actual In", "Actual Out",
			"Status", "Late (min)", "Early (min)",
		},
	}
	for _, r := range report.Rows {
		table.Rows = append(table.Rows, []any{
			r.EmployeeCode, r.FullName, r.Date, r.ShiftCode,
			r.StandardClockIn, r.StandardClockOut, r.ActualClockIn, r.ActualClockOut,
			r.Status, r.LateMinutes, r.EarlyMinutes,
		})
	}
	table.Footer = []any{"Total late hours", report.Totals.LateHours.StringFixed(2)}

	return export.WriteTables(w, table)
}

func buildRow(emp employee.Employee, d attendance.ScheduleDay) attendance.ReportRow {
	actual := d.Actual()
	rec := attendance.Record{
		StandardClockIn:  attendance.StringValue(d.StandardClockIn),
		StandardClockOut: attendance.StringValue(d.StandardClockOut),
		ActualClockIn:    actual.ClockIn,
		ActualClockOut:   actual.ClockOut,
		Status:           actual.Status,
	}
	derived := Derive(rec)
	return attendance.ReportRow{
		EmployeeID:       d.EmployeeID,
		EmployeeCode:     emp.EmployeeCode,
		FullName:         emp.FullName,
		Date:             d.Date.Format(time.DateOnly),
		ShiftCode:        attendance.StringValue(d.ShiftCode),
		StandardClockIn:  rec.StandardClockIn,
		StandardClockOut: rec.StandardClockOut,
		ActualClockIn:    rec.ActualClockIn,
		ActualClockOut:   rec.ActualClockOut,
		Status:           derived.Status,
		LateMinutes:      derived.LateMinutes,
		EarlyMinutes:     derived.EarlyMinutes,
	}
}

func addToTotals(t *attendance.ReportTotals, r attendance.ReportRow) {
	t.Rows++
	t.LateMinutes += r.LateMinutes
	t.EarlyMinutes += r.EarlyMinutes
	switch r.Status {
	case attendance.StatusAbsent:
		t.Absent++
	case attendance.StatusPresent:
		t.Present++
	}
}
