package attendance

import (
	"github.com/shopspring/decimal"
)

type ReportRow struct {
	EmployeeID       string `json:"employee_id"`
	EmployeeCode     string `json:"employee_code"`
	FullName         string `json:"full_name"`
	Date             string `json:"date"`
	ShiftCode        string `json:"shift_code"`
	StandardClockIn  string `json:"standard_clock_in"`
	StandardClockOut string `json:"standard_clock_out"`
	ActualClockIn    string `json:"actual_clock_in"`
	ActualClockOut   string `json:"actual_clock_out"`
	Status           string `json:"status"`
	LateMinutes      int    `json:"late_minutes"`
	EarlyMinutes     int    `json:"early_minutes"`
}

type ReportTotals struct {
	Rows         int             `json:"rows"`
	Present      int             `json:"present"`
	Absent       int             `json:"absent"`
	LateMinutes  int             `json:"late_minutes"`
	EarlyMinutes int             `json:"early_minutes"`
	LateHours    decimal.Decimal `json:"late_hours"`
}

type ReportResponse struct {
	GroupShiftID string       `json:"group_shift_id"`
	Period       string       `json:"period"`
	Rows         []ReportRow  `json:"rows"`
	Totals       ReportTotals `json:"totals"`
}
