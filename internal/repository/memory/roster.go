package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepositoryImpl{s: s}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok || e.CompanyID != companyID || e.DeletedAt != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepositoryImpl) ActiveMembersOf(ctx context.Context, companyID string, groupShiftID string) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.CompanyID != companyID || !e.IsActive() || e.GroupShiftID == nil || *e.GroupShiftID != groupShiftID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

func (r *employeeRepositoryImpl) UpdateGroupShift(ctx context.Context, id string, groupShiftID *string, companyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok || e.CompanyID != companyID || e.DeletedAt != nil {
		return employee.ErrEmployeeNotFound
	}
	e.GroupShiftID = copyStr(groupShiftID)
	e.UpdatedAt = r.s.now()
	r.s.employees[id] = e
	return nil
}

type scheduleDayRepositoryImpl struct {
	s *Store
}

func NewScheduleDayRepository(s *Store) attendance.ScheduleDayRepository {
	return &scheduleDayRepositoryImpl{s: s}
}

func (r *scheduleDayRepositoryImpl) UpsertStandardSchedule(ctx context.Context, std attendance.StandardSchedule) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	date := dateOnly(std.Date)
	key := dayKey{std.EmployeeID, date.Format(time.DateOnly)}
	now := r.s.now()

	d, ok := r.s.days[key]
	if ok && d.CompanyID != std.CompanyID {
		return fmt.Errorf("%w: employee %s on %s", attendance.ErrScheduleDayForeignCompany, std.EmployeeID, date.Format(time.DateOnly))
	}
	if !ok {
		d = attendance.ScheduleDay{
			EmployeeID: std.EmployeeID,
			CompanyID:  std.CompanyID,
			Date:       date,
			CreatedAt:  now,
		}
	}
	d.ShiftCode = copyStr(std.ShiftCode)
	d.StandardClockIn = copyStr(std.ClockIn)
	d.StandardClockOut = copyStr(std.ClockOut)
	d.IsWorkingDay = std.IsWorkingDay
	d.UpdatedAt = now
	r.s.days[key] = d
	return nil
}

func (r *scheduleDayRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.ScheduleDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.days[dayKey{employeeID, dateOnly(date).Format(time.DateOnly)}]
	if !ok || d.CompanyID != companyID {
		return nil, nil
	}
	return &d, nil
}

func (r *scheduleDayRepositoryImpl) GetActual(ctx context.Context, employeeID string, date time.Time, companyID string) (attendance.Actual, error) {
	d, err := r.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil || d == nil {
		return attendance.Actual{}, err
	}
	return d.Actual(), nil
}

func (r *scheduleDayRepositoryImpl) ListByEmployeesAndPeriod(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time) ([]attendance.ScheduleDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}
	from, to = dateOnly(from), dateOnly(to)

	var out []attendance.ScheduleDay
	for _, d := range r.s.days {
		if _, ok := wanted[d.EmployeeID]; !ok || d.CompanyID != companyID {
			continue
		}
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
