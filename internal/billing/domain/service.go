package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// GenerateRequest produces a bill from a customer's recorded consumption.
// Force regenerates an existing bill as long as no payment has been made
// against it.
type GenerateRequest struct {
	CustomerID snowflake.ID
	Month      time.Time
	Force      bool
}

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*Detail, error)
	Detail(ctx context.Context, billID snowflake.ID) (*Detail, error)
	ListByUsername(ctx context.Context, username string) ([]Bill, error)
	PendingByUsername(ctx context.Context, username string) ([]Bill, error)
	ListPending(ctx context.Context) ([]CustomerBill, error)
	Statement(ctx context.Context, billID snowflake.ID) ([]byte, error)
}

var (
	ErrBillNotFound     = errors.New("bill_not_found")
	ErrNoBills          = errors.New("no_bills")
	ErrNoConsumption    = errors.New("no_consumption_for_month")
	ErrBillExists       = errors.New("bill_already_generated")
	ErrBillHasPayments  = errors.New("bill_has_payments")
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrNoTariff         = errors.New("no_tariff_for_service")
)
