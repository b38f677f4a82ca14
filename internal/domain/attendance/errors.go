package attendance

import "errors"

var (
	ErrScheduleDayNotFound       = errors.New("no schedule found for employee on this date")
	ErrScheduleDayForeignCompany = errors.New("schedule day belongs to another company")
)
