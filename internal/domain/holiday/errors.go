package holiday

import "errors"

var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayDateExists = errors.New("a holiday is already registered on this date")
)
