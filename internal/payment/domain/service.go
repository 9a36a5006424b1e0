package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// RecordRequest settles part or all of a bill. CustomerID, when set,
// must match the bill's owner; staff leave it zero.
type RecordRequest struct {
	BillID      snowflake.ID
	CustomerID  snowflake.ID
	AmountCents int64
	Method      string
}

type Service interface {
	Record(ctx context.Context, req RecordRequest) (*Payment, error)
	HistoryByUsername(ctx context.Context, username string) ([]HistoryEntry, error)
	Ledger(ctx context.Context, from, to *time.Time) ([]LedgerEntry, error)
}

var (
	ErrBillNotFound    = errors.New("bill_not_found")
	ErrInvalidAmount   = errors.New("invalid_payment_amount")
	ErrInvalidMethod   = errors.New("invalid_payment_method")
	ErrBillAlreadyPaid = errors.New("bill_already_paid")
	ErrOverpayment     = errors.New("overpayment_rejected")
	ErrNoPayments      = errors.New("no_payments")
)
