package rotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSyncWorkers         = 8
	DefaultSyncEmployeeTimeout = 30 * time.Second
)

type SyncConfig struct {
	// Workers bounds how many employees are written concurrently.
	Workers int
	// EmployeeTimeout bounds the roster lookup and each employee's month of writes.
	EmployeeTimeout time.Duration
}

func (c SyncConfig) withDefaults() SyncConfig {
	if c.Workers <= 0 {
		c.Workers = DefaultSyncWorkers
	}
	if c.EmployeeTimeout <= 0 {
		c.EmployeeTimeout = DefaultSyncEmployeeTimeout
	}
	return c
}

// Synchronizer stamps a monthly matrix onto the schedule days of every active
// member of its group.
type Synchronizer struct {
	tx            database.Transactor
	matrixRepo    rotation.MatrixRepository
	shiftTypeRepo shift.ShiftTypeRepository
	employeeRepo  employee.EmployeeRepository
	scheduleRepo  attendance.ScheduleDayRepository
	cfg           SyncConfig
	now           func() time.Time
}

func NewSynchronizer(
	tx database.Transactor,
	matrixRepo rotation.MatrixRepository,
	shiftTypeRepo shift.ShiftTypeRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo attendance.ScheduleDayRepository,
	cfg SyncConfig,
) *Synchronizer {
	return &Synchronizer{
		tx:            tx,
		matrixRepo:    matrixRepo,
		shiftTypeRepo: shiftTypeRepo,
		employeeRepo:  employeeRepo,
		scheduleRepo:  scheduleRepo,
		cfg:           cfg.withDefaults(),
		now:           time.Now,
	}
}

// plannedDay is the standard schedule one matrix slot asks for.
type plannedDay struct {
	date         time.Time
	shiftCode    string
	clockIn      *string
	clockOut     *string
	isWorkingDay bool
}

type employeeResult struct {
	employeeID string
	updated    int
	skipped    int
	failedDate *time.Time
	err        error
}

// Sync loads the matrix of (group, period) and writes it to the roster. Only
// hard failures before the fan-out are returned as error; per-employee
// failures are collected in the report.
func (s *Synchronizer) Sync(ctx context.Context, companyID, groupID string, period rotation.Period) (rotation.SyncReport, error) {
	report := rotation.SyncReport{
		RunID:        uuid.NewString(),
		GroupShiftID: groupID,
		Period:       period.String(),
		Errors:       []rotation.SyncError{},
		StartedAt:    s.now().UTC(),
	}

	matrix, err := s.matrixRepo.Get(ctx, companyID, groupID, period)
	if err != nil {
		return report, err
	}

	days, err := s.plan(ctx, companyID, matrix)
	if err != nil {
		return report, err
	}

	rosterCtx, cancel := context.WithTimeout(ctx, s.cfg.EmployeeTimeout)
	members, err := s.employeeRepo.ActiveMembersOf(rosterCtx, companyID, groupID)
	cancel()
	if err != nil {
		return report, fmt.Errorf("failed to load group roster: %w", err)
	}
	report.Employees = len(members)

	results := make(chan employeeResult, len(members))
	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)
	for _, m := range members {
		employeeID := m.ID
		g.Go(func() error {
			results <- s.syncEmployee(ctx, companyID, employeeID, days)
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	for res := range results {
		report.Updated += res.updated
		report.Skipped += res.skipped
		if res.err == nil {
			continue
		}
		syncErr := rotation.SyncError{EmployeeID: res.employeeID, Message: res.err.Error()}
		if res.failedDate != nil {
			d := res.failedDate.Format(time.DateOnly)
			syncErr.Date = &d
		}
		report.Errors = append(report.Errors, syncErr)
	}
	sort.Slice(report.Errors, func(i, j int) bool {
		return report.Errors[i].EmployeeID < report.Errors[j].EmployeeID
	})
	report.FinishedAt = s.now().UTC()

	slog.InfoContext(ctx, "matrix synced",
		"run_id", report.RunID,
		"company_id", companyID,
		"group_shift_id", groupID,
		"period", report.Period,
		"employees", report.Employees,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", len(report.Errors),
	)
	return report, nil
}

// plan resolves every set slot of the month to its standard schedule.
// Empty slots are left out and never touch the schedule.
func (s *Synchronizer) plan(ctx context.Context, companyID string, matrix rotation.MonthlyMatrix) ([]plannedDay, error) {
	types, err := s.shiftTypeRepo.GetByCodes(ctx, companyID, matrix.Codes())
	if err != nil {
		return nil, fmt.Errorf("failed to load shift types: %w", err)
	}

	var days []plannedDay
	for d := 1; d <= matrix.Period.DaysInMonth(); d++ {
		slot := matrix.Day(d)
		if slot == "" {
			continue
		}
		day := plannedDay{date: matrix.Period.Date(d), shiftCode: slot}
		if !shift.IsOff(slot) {
			t, ok := types[slot]
			if !ok {
				return nil, fmt.Errorf("%w: matrix day %d references %s", shift.ErrShiftTypeNotFound, d, slot)
			}
			in, out := t.ClockIn, t.ClockOut
			day.clockIn, day.clockOut = &in, &out
			day.isWorkingDay = true
		}
		days = append(days, day)
	}
	return days, nil
}

// syncEmployee writes one employee's month, one transaction per day. The
// first failing day stops the employee; days already written stay written.
func (s *Synchronizer) syncEmployee(ctx context.Context, companyID, employeeID string, days []plannedDay) employeeResult {
	res := employeeResult{employeeID: employeeID}

	empCtx, cancel := context.WithTimeout(ctx, s.cfg.EmployeeTimeout)
	defer cancel()

	for _, day := range days {
		want := attendance.StandardSchedule{
			EmployeeID:   employeeID,
			CompanyID:    companyID,
			Date:         day.date,
			ShiftCode:    &day.shiftCode,
			ClockIn:      day.clockIn,
			ClockOut:     day.clockOut,
			IsWorkingDay: day.isWorkingDay,
		}

		err := func() error {
			if err := empCtx.Err(); err != nil {
				return err
			}
			current, err := s.scheduleRepo.GetByEmployeeAndDate(empCtx, employeeID, day.date, companyID)
			if err != nil {
				return fmt.Errorf("failed to read schedule day: %w", err)
			}
			if current != nil && current.Standard().SameAs(want) {
				res.skipped++
				return nil
			}
			err = s.tx.WithinTransaction(empCtx, func(txCtx context.Context) error {
				return s.scheduleRepo.UpsertStandardSchedule(txCtx, want)
			})
			if err != nil {
				return fmt.Errorf("failed to write schedule day: %w", err)
			}
			res.updated++
			return nil
		}()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				err = fmt.Errorf("timed out after %s: %w", s.cfg.EmployeeTimeout, err)
			}
			date := day.date
			res.failedDate = &date
			res.err = err
			return res
		}
	}
	return res
}
