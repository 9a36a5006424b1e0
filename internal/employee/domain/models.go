package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Employee is the staff profile attached 1:1 to a user.
type Employee struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID     snowflake.ID `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Position   string       `gorm:"type:text;not null" json:"position"`
	Department string       `gorm:"type:text;not null" json:"department"`
	HireDate   time.Time    `gorm:"column:hire_date;not null" json:"hire_date"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

// Skill records one service competency used for report auto-assignment.
// Proficiency runs 1 (novice) to 5 (expert).
type Skill struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	EmployeeID  snowflake.ID `gorm:"column:employee_id;not null;index" json:"employee_id"`
	ServiceType string       `gorm:"column:service_type;type:text;not null" json:"service_type"`
	Proficiency int          `gorm:"not null" json:"proficiency"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Skill) TableName() string { return "employee_skills" }

// Profile joins the employee row with its user account fields and skills.
type Profile struct {
	EmployeeID  snowflake.ID `json:"employee_id"`
	UserID      snowflake.ID `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Phone       string       `json:"phone"`
	Position    string       `json:"position"`
	Department  string       `json:"department"`
	HireDate    time.Time    `json:"hire_date"`
	Skills      []Skill      `gorm:"-" json:"skills"`
}

// RecentPayment is one row of the dashboard's latest-payments widget.
type RecentPayment struct {
	PaymentID    snowflake.ID `json:"payment_id"`
	CustomerName string       `json:"customer_name"`
	AmountCents  int64        `json:"amount_cents"`
	Method       string       `json:"method"`
	PaidAt       time.Time    `json:"paid_at"`
}

// Stats summarizes an employee's dashboard.
type Stats struct {
	TotalReports       int64           `json:"total_reports"`
	ResolvedReports    int64           `json:"resolved_reports"`
	PendingReports     int64           `json:"pending_reports"`
	MonthPaymentsCents int64           `json:"month_payments_cents"`
	RecentPayments     []RecentPayment `json:"recent_payments"`
}
