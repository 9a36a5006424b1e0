package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Record stores one customer's metered usage for one service and month.
// Month is normalized to the first day of the month, UTC midnight.
type Record struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID `gorm:"column:customer_id;not null;uniqueIndex:idx_consumption_period,priority:1" json:"customer_id"`
	ServiceType string       `gorm:"column:service_type;type:text;not null;uniqueIndex:idx_consumption_period,priority:2" json:"service_type"`
	Month       time.Time    `gorm:"column:month;not null;uniqueIndex:idx_consumption_period,priority:3" json:"month"`
	Usage       float64      `gorm:"column:usage_amount;not null" json:"usage"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Record) TableName() string { return "consumption_records" }

// SummaryRow is one service line of the monthly dashboard summary.
// Services without a record report zero usage and classification "N/A".
type SummaryRow struct {
	ServiceType    string  `json:"service_type"`
	Usage          float64 `json:"usage"`
	Classification string  `json:"classification"`
}

// NormalizeMonth truncates a timestamp to the first day of its month.
func NormalizeMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
