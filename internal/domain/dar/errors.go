package dar

import "errors"

var (
	// Report Errors
	ErrReportNotFound      = errors.New("activity report not found")
	ErrReportNotEditable   = errors.New("activity report is no longer editable")
	ErrReportNotSubmitted  = errors.New("activity report has not been submitted")
	ErrReportEmpty         = errors.New("activity report has no tasks")
	ErrReportExists        = errors.New("activity report for this date already exists")
	ErrReportAccessDenied  = errors.New("activity report belongs to another employee")
	ErrSelfReviewForbidden = errors.New("reviewers cannot review their own report")

	// Task Errors
	ErrTaskNotFound = errors.New("activity task not found")

	// Request Data Errors
	ErrEmployeeRequired = errors.New("an employee profile is required to record activity")
)
