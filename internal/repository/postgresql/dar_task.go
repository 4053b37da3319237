package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Times are stored as TIME and always read back as HH:MM.
const taskColumns = `id, report_id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		title, task_type, description, created_at, updated_at`

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) dar.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func scanTask(row pgx.Row) (dar.Task, error) {
	var t dar.Task
	err := row.Scan(
		&t.ID, &t.ReportID, &t.StartTime, &t.EndTime,
		&t.Title, &t.Type, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements dar.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, task dar.Task) (dar.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_tasks (id, report_id, start_time, end_time, title, task_type, description)
		VALUES ($1, $2, $3::time, $4::time, $5, $6, $7)
		RETURNING ` + taskColumns

	created, err := scanTask(q.QueryRow(ctx, query,
		task.ID, task.ReportID, task.StartTime, task.EndTime, task.Title, task.Type, task.Description,
	))
	if err != nil {
		return dar.Task{}, fmt.Errorf("failed to create activity task: %w", err)
	}
	return created, nil
}

// GetByID implements dar.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (dar.Task, error) {
	q := GetQuerier(ctx, r.db)

	task, err := scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM activity_tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return dar.Task{}, dar.ErrTaskNotFound
	}
	if err != nil {
		return dar.Task{}, fmt.Errorf("failed to get activity task: %w", err)
	}
	return task, nil
}

// GetByReportID implements dar.TaskRepository.
func (r *taskRepositoryImpl) GetByReportID(ctx context.Context, reportID string) ([]dar.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `
		FROM activity_tasks
		WHERE report_id = $1
		ORDER BY start_time, created_at
	`
	rows, err := q.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity tasks: %w", err)
	}
	defer rows.Close()

	var tasks []dar.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity tasks: %w", err)
	}
	return tasks, nil
}

// ListByEmployeeBetween implements dar.TaskRepository.
func (r *taskRepositoryImpl) ListByEmployeeBetween(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]dar.DatedTask, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ar.report_date, t.id, t.report_id, to_char(t.start_time, 'HH24:MI'), to_char(t.end_time, 'HH24:MI'),
			t.title, t.task_type, t.description, t.created_at, t.updated_at
		FROM activity_tasks t
		JOIN activity_reports ar ON ar.id = t.report_id
		WHERE ar.company_id = $1 AND ar.employee_id = $2 AND ar.report_date BETWEEN $3 AND $4
		ORDER BY ar.report_date, t.start_time, t.created_at
	`
	rows, err := q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity tasks by range: %w", err)
	}
	defer rows.Close()

	var tasks []dar.DatedTask
	for rows.Next() {
		var d dar.DatedTask
		if err := rows.Scan(
			&d.Date, &d.ID, &d.ReportID, &d.StartTime, &d.EndTime,
			&d.Title, &d.Type, &d.Description, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity task: %w", err)
		}
		tasks = append(tasks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity tasks: %w", err)
	}
	return tasks, nil
}

// Update implements dar.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, task dar.Task) (dar.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE activity_tasks
		SET start_time = $1::time, end_time = $2::time, title = $3, task_type = $4, description = $5,
			updated_at = NOW()
		WHERE id = $6
		RETURNING ` + taskColumns

	updated, err := scanTask(q.QueryRow(ctx, query,
		task.StartTime, task.EndTime, task.Title, task.Type, task.Description, task.ID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return dar.Task{}, dar.ErrTaskNotFound
	}
	if err != nil {
		return dar.Task{}, fmt.Errorf("failed to update activity task: %w", err)
	}
	return updated, nil
}

// Delete implements dar.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM activity_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dar.ErrTaskNotFound
	}
	return nil
}
