package dar

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/holiday"
)

// memStore backs all three repositories. Writes made inside a failed
// transaction are discarded by fakeTransactor.
type memStore struct {
	reports  map[string]dar.Report
	tasks    map[string]dar.Task
	holidays []holiday.Holiday
	seq      int
	failOn   string
}

func newMemStore() *memStore {
	return &memStore{reports: map[string]dar.Report{}, tasks: map[string]dar.Task{}}
}

func (m *memStore) tick() time.Time {
	m.seq++
	return time.Date(2025, time.March, 1, 0, 0, m.seq, 0, time.UTC)
}

func (m *memStore) snapshot() (map[string]dar.Report, map[string]dar.Task) {
	reports := make(map[string]dar.Report, len(m.reports))
	for k, v := range m.reports {
		reports[k] = v
	}
	tasks := make(map[string]dar.Task, len(m.tasks))
	for k, v := range m.tasks {
		tasks[k] = v
	}
	return reports, tasks
}

type fakeTransactor struct {
	store *memStore
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	reports, tasks := f.store.snapshot()
	if err := fn(ctx); err != nil {
		f.store.reports, f.store.tasks = reports, tasks
		return err
	}
	return nil
}

type reportRepo struct{ *memStore }

func (r reportRepo) Create(_ context.Context, report dar.Report) (dar.Report, error) {
	for _, existing := range r.reports {
		if existing.EmployeeID == report.EmployeeID && existing.ReportDate.Equal(report.ReportDate) {
			return dar.Report{}, dar.ErrReportExists
		}
	}
	report.CreatedAt = r.tick()
	report.UpdatedAt = report.CreatedAt
	r.reports[report.ID] = report
	return report, nil
}

func (r reportRepo) GetByID(_ context.Context, id, companyID string) (dar.Report, error) {
	report, ok := r.reports[id]
	if !ok || report.CompanyID != companyID {
		return dar.Report{}, dar.ErrReportNotFound
	}
	return report, nil
}

func (r reportRepo) GetByEmployeeAndDate(_ context.Context, companyID, employeeID string, date time.Time) (dar.Report, error) {
	for _, report := range r.reports {
		if report.CompanyID == companyID && report.EmployeeID == employeeID && report.ReportDate.Equal(date) {
			return report, nil
		}
	}
	return dar.Report{}, dar.ErrReportNotFound
}

func (r reportRepo) ListByEmployeeBetween(_ context.Context, companyID, employeeID string, start, end time.Time) ([]dar.Report, error) {
	var out []dar.Report
	for _, report := range r.reports {
		if report.CompanyID == companyID && report.EmployeeID == employeeID &&
			!report.ReportDate.Before(start) && !report.ReportDate.After(end) {
			out = append(out, report)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate.Before(out[j].ReportDate) })
	return out, nil
}

func (r reportRepo) List(_ context.Context, companyID string, filter dar.ReportFilter) ([]dar.Report, int64, error) {
	var out []dar.Report
	for _, report := range r.reports {
		if report.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && report.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(report.Status) != *filter.Status {
			continue
		}
		out = append(out, report)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate.After(out[j].ReportDate) })
	total := int64(len(out))
	lo := min(filter.Offset(), len(out))
	hi := min(lo+filter.Limit, len(out))
	return out[lo:hi], total, nil
}

func (r reportRepo) UpdateStatus(_ context.Context, report dar.Report) error {
	if _, ok := r.reports[report.ID]; !ok {
		return dar.ErrReportNotFound
	}
	report.Tasks = nil
	report.UpdatedAt = r.tick()
	r.reports[report.ID] = report
	return nil
}

func (r reportRepo) Touch(_ context.Context, id string) error {
	report := r.reports[id]
	report.UpdatedAt = r.tick()
	r.reports[id] = report
	return nil
}

type taskRepo struct{ *memStore }

func (r taskRepo) Create(_ context.Context, task dar.Task) (dar.Task, error) {
	if r.failOn == "create" {
		return dar.Task{}, errTaskWrite
	}
	task.CreatedAt = r.tick()
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = task
	return task, nil
}

func (r taskRepo) GetByID(_ context.Context, id string) (dar.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return dar.Task{}, dar.ErrTaskNotFound
	}
	return task, nil
}

func (r taskRepo) GetByReportID(_ context.Context, reportID string) ([]dar.Task, error) {
	var out []dar.Task
	for _, t := range r.tasks {
		if t.ReportID == reportID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r taskRepo) ListByEmployeeBetween(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]dar.DatedTask, error) {
	reports, _ := reportRepo{r.memStore}.ListByEmployeeBetween(ctx, companyID, employeeID, start, end)
	var out []dar.DatedTask
	for _, report := range reports {
		tasks, _ := r.GetByReportID(ctx, report.ID)
		for _, t := range tasks {
			out = append(out, dar.DatedTask{Date: report.ReportDate, Task: t})
		}
	}
	return out, nil
}

func (r taskRepo) Update(_ context.Context, task dar.Task) (dar.Task, error) {
	current, ok := r.tasks[task.ID]
	if !ok {
		return dar.Task{}, dar.ErrTaskNotFound
	}
	task.ReportID = current.ReportID
	task.CreatedAt = current.CreatedAt
	task.UpdatedAt = r.tick()
	r.tasks[task.ID] = task
	return task, nil
}

func (r taskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return dar.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type holidayRepo struct{ *memStore }

func (r holidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.holidays = append(r.holidays, h)
	return h, nil
}

func (r holidayRepo) GetByID(_ context.Context, id, companyID string) (holiday.Holiday, error) {
	for _, h := range r.holidays {
		if h.ID == id && h.CompanyID == companyID {
			return h, nil
		}
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (r holidayRepo) ListBetween(_ context.Context, companyID string, start, end time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range r.holidays {
		if h.CompanyID == companyID && !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r holidayRepo) Update(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}

func (r holidayRepo) Delete(context.Context, string, string) error { return nil }
