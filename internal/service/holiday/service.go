package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/google/uuid"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	now func() time.Time
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepository,
		now:               time.Now,
	}
}

func toResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:         h.ID,
		Date:       h.Date.Format("2006-01-02"),
		Name:       h.Name,
		IsNational: h.IsNational,
		CreatedAt:  h.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  h.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func managerIdentity(ctx context.Context) (user.Identity, error) {
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return user.Identity{}, err
	}
	if !id.Can(user.PermissionHolidayManage) {
		return user.Identity{}, user.ErrInsufficientPermissions
	}
	return id, nil
}

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	id, err := managerIdentity(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := time.Parse(time.DateOnly, req.Date)
	newID, err := uuid.NewV7()
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		ID:         newID.String(),
		CompanyID:  id.CompanyID,
		Date:       date,
		Name:       req.Name,
		IsNational: req.IsNational,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return toResponse(created), nil
}

// GetHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) GetHoliday(ctx context.Context, holidayID string) (holiday.HolidayResponse, error) {
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	h, err := s.HolidayRepository.GetByID(ctx, holidayID, id.CompanyID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return toResponse(h), nil
}

// ListHolidays implements holiday.HolidayService. An empty filter lists the
// current year.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start, end := filter.Range(s.now())
	holidays, err := s.HolidayRepository.ListBetween(ctx, id.CompanyID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, toResponse(h))
	}
	return responses, nil
}

// UpdateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) UpdateHoliday(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	id, err := managerIdentity(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	h, err := s.HolidayRepository.GetByID(ctx, req.ID, id.CompanyID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if req.Date != nil {
		h.Date, _ = time.Parse(time.DateOnly, *req.Date)
	}
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.IsNational != nil {
		h.IsNational = *req.IsNational
	}

	updated, err := s.HolidayRepository.Update(ctx, h)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return toResponse(updated), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) DeleteHoliday(ctx context.Context, holidayID string) error {
	id, err := managerIdentity(ctx)
	if err != nil {
		return err
	}
	return s.HolidayRepository.Delete(ctx, holidayID, id.CompanyID)
}
