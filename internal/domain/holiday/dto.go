package holiday

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date       string `json:"date"`
	Name       string `json:"name"`
	IsNational bool   `json:"is_national"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be a valid date in YYYY-MM-DD format")
	}
	validateName(&errs, r.Name)

	return errs.OrNil()
}

type UpdateHolidayRequest struct {
	ID         string  `json:"-"`
	Date       *string `json:"date,omitempty"`
	Name       *string `json:"name,omitempty"`
	IsNational *bool   `json:"is_national,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be a valid date in YYYY-MM-DD format")
		}
	}
	if r.Name != nil {
		validateName(&errs, *r.Name)
	}
	if r.Date == nil && r.Name == nil && r.IsNational == nil {
		errs.Add("body", "at least one field must be provided")
	}

	return errs.OrNil()
}

// HolidayFilter selects either a whole year or an explicit date range.
type HolidayFilter struct {
	Year      string `json:"year,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

func (f *HolidayFilter) Validate() error {
	var errs validator.ValidationErrors

	switch {
	case f.StartDate != "" || f.EndDate != "":
		start, okStart := validator.IsValidDate(f.StartDate)
		end, okEnd := validator.IsValidDate(f.EndDate)
		if !okStart {
			errs.Add("start_date", "start_date must be a valid date in YYYY-MM-DD format")
		}
		if !okEnd {
			errs.Add("end_date", "end_date must be a valid date in YYYY-MM-DD format")
		}
		if okStart && okEnd && end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		}
	case f.Year != "":
		y, err := strconv.Atoi(f.Year)
		if err != nil || y < 1900 || y > 2200 {
			errs.Add("year", "year must be a four digit year")
		}
	}

	return errs.OrNil()
}

// Range resolves the filter into inclusive bounds; the current year when empty.
func (f HolidayFilter) Range(now time.Time) (time.Time, time.Time) {
	if f.StartDate != "" && f.EndDate != "" {
		start, _ := time.Parse(time.DateOnly, f.StartDate)
		end, _ := time.Parse(time.DateOnly, f.EndDate)
		return start, end
	}
	year := now.Year()
	if f.Year != "" {
		year, _ = strconv.Atoi(f.Year)
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, -1)
}

type HolidayResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Name       string `json:"name"`
	IsNational bool   `json:"is_national"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func validateName(errs *validator.ValidationErrors, name string) {
	if validator.IsEmpty(name) {
		errs.Add("name", "name is required")
	} else if !validator.MaxLength(name, 150) {
		errs.Add("name", fmt.Sprintf("name must not exceed %d characters", 150))
	}
}
