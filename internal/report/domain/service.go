package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	CustomerID  snowflake.ID
	ServiceType string
	Description string
}

// UpdateRequest advances a report through the workflow. EmployeeID is
// required whenever the target status is past Pending and the report has
// no assignee yet.
type UpdateRequest struct {
	ReportID   snowflake.ID
	Status     string
	EmployeeID *snowflake.ID
	Notes      string
}

type ListFilter struct {
	Status      *string
	ServiceType *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*FailureReport, error)
	UpdateStatus(ctx context.Context, req UpdateRequest) (*FailureReport, error)
	ListByUsername(ctx context.Context, username string, status *string) ([]CustomerView, error)
	ListAll(ctx context.Context, filter ListFilter) ([]StaffView, error)
}

var (
	ErrReportNotFound     = errors.New("report_not_found")
	ErrNoReports          = errors.New("no_reports")
	ErrInvalidStatus      = errors.New("invalid_report_status")
	ErrInvalidTransition  = errors.New("invalid_status_transition")
	ErrEmployeeRequired   = errors.New("employee_required")
	ErrEmployeeNotFound   = errors.New("employee_not_found")
	ErrInvalidServiceType = errors.New("invalid_service_type")
	ErrCustomerNotFound   = errors.New("customer_not_found")
	ErrEmptyDescription   = errors.New("empty_description")
)
