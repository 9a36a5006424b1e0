package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// AddRequest ingests one usage reading. Replace overwrites an existing
// reading for the same (customer, service, month) instead of rejecting it.
type AddRequest struct {
	CustomerID  snowflake.ID
	ServiceType string
	Month       time.Time
	Usage       float64
	Replace     bool
}

type Service interface {
	Add(ctx context.Context, req AddRequest) (*Record, error)
	MonthlySummary(ctx context.Context, username string, month time.Time) ([]SummaryRow, error)
	ForMonth(ctx context.Context, username string, month time.Time) ([]Record, error)
	ListByCustomer(ctx context.Context, customerID snowflake.ID, month *time.Time) ([]Record, error)
}

var (
	ErrInvalidServiceType = errors.New("invalid_service_type")
	ErrInvalidUsage       = errors.New("invalid_usage")
	ErrCustomerNotFound   = errors.New("customer_not_found")
	ErrDuplicateRecord    = errors.New("duplicate_consumption_record")
	ErrNoRecords          = errors.New("no_consumption_records")
)
