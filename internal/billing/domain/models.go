package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusGenerated     = "Generated"
	StatusPartiallyPaid = "Partially Paid"
	StatusPaid          = "Paid"
)

// Bill is a monthly statement covering every service the customer consumed
// that month. Amounts are in minor units (cents).
type Bill struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID `gorm:"column:customer_id;not null;uniqueIndex:idx_bill_period,priority:1" json:"customer_id"`
	Month       time.Time    `gorm:"column:month;not null;uniqueIndex:idx_bill_period,priority:2" json:"month"`
	TotalCents  int64        `gorm:"column:total_cents;not null" json:"total_cents"`
	PaidCents   int64        `gorm:"column:paid_cents;not null;default:0" json:"paid_cents"`
	Status      string       `gorm:"column:status;type:text;not null;index" json:"status"`
	GeneratedAt time.Time    `gorm:"column:generated_at;not null" json:"generated_at"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Bill) TableName() string { return "bills" }

// BalanceCents is the amount still owed on the bill.
func (b Bill) BalanceCents() int64 { return b.TotalCents - b.PaidCents }

// LineItem prices one service's usage on a bill.
type LineItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	BillID      snowflake.ID `gorm:"column:bill_id;not null;index" json:"bill_id"`
	ServiceType string       `gorm:"column:service_type;type:text;not null" json:"service_type"`
	Usage       float64      `gorm:"column:usage_amount;not null" json:"usage"`
	RateCents   int64        `gorm:"column:rate_cents;not null" json:"rate_cents"`
	AmountCents int64        `gorm:"column:amount_cents;not null" json:"amount_cents"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (LineItem) TableName() string { return "bill_line_items" }

// Detail is a bill with its line items.
type Detail struct {
	Bill  Bill       `json:"bill"`
	Items []LineItem `json:"items"`
}

// CustomerBill is a bill row joined with the owning customer, used by
// staff-facing listings.
type CustomerBill struct {
	Bill
	CustomerName string `json:"customer_name"`
	Username     string `json:"username"`
}
