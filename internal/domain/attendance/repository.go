package attendance

import (
	"context"
	"time"
)

// ScheduleDayRepository stores the per-employee daily schedule. All methods
// take companyID or operate on rows that carry it to keep tenants apart.
type ScheduleDayRepository interface {
	// UpsertStandardSchedule writes the standard fields of (employee, date),
	// creating the row if needed. Actual clock times and status are never touched.
	UpsertStandardSchedule(ctx context.Context, s StandardSchedule) error

	// GetByEmployeeAndDate returns nil, nil when no row exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*ScheduleDay, error)

	// GetActual returns what attendance capture recorded for the day; zero Actual when nothing was.
	GetActual(ctx context.Context, employeeID string, date time.Time, companyID string) (Actual, error)

	// ListByEmployeesAndPeriod returns rows for from..to inclusive, ordered by employee then date.
	ListByEmployeesAndPeriod(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time) ([]ScheduleDay, error)
}
