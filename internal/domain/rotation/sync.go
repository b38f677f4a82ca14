package rotation

import "time"

// SyncReport summarizes one matrix-to-schedule synchronization run.
// Updated and Skipped count employee-days.
type SyncReport struct {
	RunID        string      `json:"run_id"`
	GroupShiftID string      `json:"group_shift_id"`
	Period       string      `json:"period"`
	Employees    int         `json:"employees"`
	Updated      int         `json:"updated"`
	Skipped      int         `json:"skipped"`
	Errors       []SyncError `json:"errors"`
	StartedAt    time.Time   `json:"started_at"`
	FinishedAt   time.Time   `json:"finished_at"`
}

type SyncError struct {
	EmployeeID string  `json:"employee_id"`
	Date       *string `json:"date,omitempty"`
	Message    string  `json:"message"`
}

// Err returns a *PartialBatchFailureError when any employee failed, nil otherwise.
func (r SyncReport) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &PartialBatchFailureError{Report: r}
}
