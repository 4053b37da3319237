package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id, companyID string) (Holiday, error)
	ListBetween(ctx context.Context, companyID string, start, end time.Time) ([]Holiday, error)
	Update(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id, companyID string) error
}
