package attendance

import (
	"context"
	"io"
)

type AttendanceService interface {
	// GroupReport derives lateness, earliness and status for every member-day of the period.
	GroupReport(ctx context.Context, groupID, period string) (ReportResponse, error)
	// DeriveDay derives a single employee-day, date in YYYY-MM-DD.
	DeriveDay(ctx context.Context, employeeID, date string) (ReportRow, error)
	ExportGroupReport(ctx context.Context, groupID, period string, w io.Writer) error
}
