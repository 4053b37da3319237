package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const reportColumns = `id, company_id, employee_id, report_date, status, reviewer_id, review_note,
		submitted_at, reviewed_at, created_at, updated_at`

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) dar.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

func scanReport(row pgx.Row) (dar.Report, error) {
	var r dar.Report
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.EmployeeID, &r.ReportDate, &r.Status, &r.ReviewerID, &r.ReviewNote,
		&r.SubmittedAt, &r.ReviewedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Create implements dar.ReportRepository.
func (r *reportRepositoryImpl) Create(ctx context.Context, report dar.Report) (dar.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_reports (id, company_id, employee_id, report_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reportColumns

	created, err := scanReport(q.QueryRow(ctx, query,
		report.ID, report.CompanyID, report.EmployeeID, report.ReportDate, report.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return dar.Report{}, dar.ErrReportExists
		}
		return dar.Report{}, fmt.Errorf("failed to create activity report: %w", err)
	}
	return created, nil
}

// GetByID implements dar.ReportRepository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (dar.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reportColumns + ` FROM activity_reports WHERE id = $1 AND company_id = $2`
	report, err := scanReport(q.QueryRow(ctx, query, id, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return dar.Report{}, dar.ErrReportNotFound
	}
	if err != nil {
		return dar.Report{}, fmt.Errorf("failed to get activity report: %w", err)
	}
	return report, nil
}

// GetByEmployeeAndDate implements dar.ReportRepository.
func (r *reportRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (dar.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + reportColumns + `
		FROM activity_reports
		WHERE company_id = $1 AND employee_id = $2 AND report_date = $3
	`
	report, err := scanReport(q.QueryRow(ctx, query, companyID, employeeID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return dar.Report{}, dar.ErrReportNotFound
	}
	if err != nil {
		return dar.Report{}, fmt.Errorf("failed to get activity report by date: %w", err)
	}
	return report, nil
}

// ListByEmployeeBetween implements dar.ReportRepository.
func (r *reportRepositoryImpl) ListByEmployeeBetween(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]dar.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + reportColumns + `
		FROM activity_reports
		WHERE company_id = $1 AND employee_id = $2 AND report_date BETWEEN $3 AND $4
		ORDER BY report_date
	`
	rows, err := q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// List implements dar.ReportRepository.
func (r *reportRepositoryImpl) List(ctx context.Context, companyID string, filter dar.ReportFilter) ([]dar.Report, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("report_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("report_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM activity_reports"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity reports: %w", err)
	}

	query := "SELECT " + reportColumns + " FROM activity_reports" + where +
		fmt.Sprintf(" ORDER BY report_date DESC, created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity reports: %w", err)
	}
	defer rows.Close()

	reports, err := collectReports(rows)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// UpdateStatus implements dar.ReportRepository.
func (r *reportRepositoryImpl) UpdateStatus(ctx context.Context, report dar.Report) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE activity_reports
		SET status = $1, reviewer_id = $2, review_note = $3, submitted_at = $4, reviewed_at = $5,
			updated_at = NOW()
		WHERE id = $6 AND company_id = $7
	`
	tag, err := q.Exec(ctx, query,
		report.Status, report.ReviewerID, report.ReviewNote, report.SubmittedAt, report.ReviewedAt,
		report.ID, report.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity report status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dar.ErrReportNotFound
	}
	return nil
}

// Touch implements dar.ReportRepository.
func (r *reportRepositoryImpl) Touch(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE activity_reports SET updated_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to touch activity report: %w", err)
	}
	return nil
}

func collectReports(rows pgx.Rows) ([]dar.Report, error) {
	var reports []dar.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity reports: %w", err)
	}
	return reports, nil
}
