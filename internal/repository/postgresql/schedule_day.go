package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleDayRepositoryImpl struct {
	db *database.DB
}

func NewScheduleDayRepository(db *database.DB) attendance.ScheduleDayRepository {
	return &scheduleDayRepositoryImpl{db: db}
}

const scheduleDayColumns = `
	employee_id, company_id, date, shift_code, standard_clock_in, standard_clock_out, is_working_day,
	actual_clock_in, actual_clock_out, status, created_at, updated_at`

func scanScheduleDay(row pgx.Row) (attendance.ScheduleDay, error) {
	var d attendance.ScheduleDay
	err := row.Scan(
		&d.EmployeeID, &d.CompanyID, &d.Date, &d.ShiftCode, &d.StandardClockIn, &d.StandardClockOut, &d.IsWorkingDay,
		&d.ActualClockIn, &d.ActualClockOut, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// UpsertStandardSchedule implements attendance.ScheduleDayRepository.
func (r *scheduleDayRepositoryImpl) UpsertStandardSchedule(ctx context.Context, s attendance.StandardSchedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_schedule_days (employee_id, company_id, date, shift_code, standard_clock_in, standard_clock_out, is_working_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET shift_code = EXCLUDED.shift_code,
			standard_clock_in = EXCLUDED.standard_clock_in,
			standard_clock_out = EXCLUDED.standard_clock_out,
			is_working_day = EXCLUDED.is_working_day,
			updated_at = NOW()
		WHERE employee_schedule_days.company_id = EXCLUDED.company_id
	`

	commandTag, err := q.Exec(ctx, query,
		s.EmployeeID, s.CompanyID, s.Date, s.ShiftCode, s.ClockIn, s.ClockOut, s.IsWorkingDay,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule for employee %s on %s: %w", s.EmployeeID, s.Date.Format(time.DateOnly), err)
	}
	if commandTag.RowsAffected() != 1 {
		return fmt.Errorf("%w: employee %s on %s", attendance.ErrScheduleDayForeignCompany, s.EmployeeID, s.Date.Format(time.DateOnly))
	}
	return nil
}

// GetByEmployeeAndDate implements attendance.ScheduleDayRepository.
func (r *scheduleDayRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.ScheduleDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleDayColumns + `
		FROM employee_schedule_days
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	d, err := scanScheduleDay(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule for employee %s on %s: %w", employeeID, date.Format(time.DateOnly), err)
	}
	return &d, nil
}

// GetActual implements attendance.ScheduleDayRepository.
func (r *scheduleDayRepositoryImpl) GetActual(ctx context.Context, employeeID string, date time.Time, companyID string) (attendance.Actual, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(actual_clock_in, ''), COALESCE(actual_clock_out, ''), COALESCE(status, '')
		FROM employee_schedule_days
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	var a attendance.Actual
	err := q.QueryRow(ctx, query, employeeID, date, companyID).Scan(&a.ClockIn, &a.ClockOut, &a.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Actual{}, nil
		}
		return attendance.Actual{}, fmt.Errorf("failed to get attendance for employee %s on %s: %w", employeeID, date.Format(time.DateOnly), err)
	}
	return a, nil
}

// ListByEmployeesAndPeriod implements attendance.ScheduleDayRepository.
func (r *scheduleDayRepositoryImpl) ListByEmployeesAndPeriod(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time) ([]attendance.ScheduleDay, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleDayColumns + `
		FROM employee_schedule_days
		WHERE company_id = $1 AND employee_id = ANY($2) AND date BETWEEN $3 AND $4
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, companyID, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule days: %w", err)
	}
	defer rows.Close()

	var days []attendance.ScheduleDay
	for rows.Next() {
		d, err := scanScheduleDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
