package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Payment is one settlement against a bill. Partial payments are allowed;
// the running total can never exceed the bill total.
type Payment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	BillID      snowflake.ID `gorm:"column:bill_id;not null;index" json:"bill_id"`
	CustomerID  snowflake.ID `gorm:"column:customer_id;not null;index" json:"customer_id"`
	AmountCents int64        `gorm:"column:amount_cents;not null" json:"amount_cents"`
	Method      string       `gorm:"column:method;type:text;not null" json:"method"`
	PaidAt      time.Time    `gorm:"column:paid_at;not null;index" json:"paid_at"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

// HistoryEntry is a payment joined with its bill, shown to the customer.
type HistoryEntry struct {
	PaymentID   snowflake.ID `json:"payment_id"`
	BillID      snowflake.ID `json:"bill_id"`
	BillMonth   time.Time    `json:"bill_month"`
	AmountCents int64        `json:"amount_cents"`
	Method      string       `json:"method"`
	PaidAt      time.Time    `json:"paid_at"`
	BillStatus  string       `json:"bill_status"`
}

// LedgerEntry is a payment joined with customer identity, shown to staff.
type LedgerEntry struct {
	PaymentID    snowflake.ID `json:"payment_id"`
	BillID       snowflake.ID `json:"bill_id"`
	BillMonth    time.Time    `json:"bill_month"`
	CustomerID   snowflake.ID `json:"customer_id"`
	CustomerName string       `json:"customer_name"`
	Username     string       `json:"username"`
	AmountCents  int64        `json:"amount_cents"`
	Method       string       `json:"method"`
	PaidAt       time.Time    `json:"paid_at"`
}
