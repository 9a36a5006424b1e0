package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is the utility-account profile attached 1:1 to a user.
type Customer struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID         snowflake.ID `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Address        string       `gorm:"type:text;not null" json:"address"`
	Classification string       `gorm:"type:text;not null" json:"classification"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

// Profile joins the customer row with its user account fields.
type Profile struct {
	CustomerID     snowflake.ID `json:"customer_id"`
	UserID         snowflake.ID `json:"user_id"`
	Username       string       `json:"username"`
	DisplayName    string       `json:"display_name"`
	Phone          string       `json:"phone"`
	Address        string       `json:"address"`
	Classification string       `json:"classification"`
}
