package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const holidayColumns = `id, company_id, holiday_date, name, is_national, created_at, updated_at`

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.IsNational, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

func mapHolidayWriteError(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return holiday.ErrHolidayNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return holiday.ErrHolidayDateExists
	}
	return fmt.Errorf("failed to %s holiday: %w", action, err)
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, company_id, holiday_date, name, is_national)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + holidayColumns

	created, err := scanHoliday(q.QueryRow(ctx, query, h.ID, h.CompanyID, h.Date, h.Name, h.IsNational))
	if err != nil {
		return holiday.Holiday{}, mapHolidayWriteError(err, "create")
	}
	return created, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1 AND company_id = $2`
	h, err := scanHoliday(q.QueryRow(ctx, query, id, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	return h, nil
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, companyID string, start, end time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + holidayColumns + `
		FROM holidays
		WHERE company_id = $1 AND holiday_date BETWEEN $2 AND $3
		ORDER BY holiday_date
	`
	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return holidays, nil
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE holidays
		SET holiday_date = $1, name = $2, is_national = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING ` + holidayColumns

	updated, err := scanHoliday(q.QueryRow(ctx, query, h.Date, h.Name, h.IsNational, h.ID, h.CompanyID))
	if err != nil {
		return holiday.Holiday{}, mapHolidayWriteError(err, "update")
	}
	return updated, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
