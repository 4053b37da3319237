package holiday

import "context"

type HolidayService interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetHoliday(ctx context.Context, id string) (HolidayResponse, error)
	ListHolidays(ctx context.Context, filter HolidayFilter) ([]HolidayResponse, error)
	UpdateHoliday(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
