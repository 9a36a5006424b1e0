package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusPending    = "Pending"
	StatusAssigned   = "Assigned"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// statusRank orders the workflow. Transitions only move forward and
// Resolved is terminal.
var statusRank = map[string]int{
	StatusPending:    0,
	StatusAssigned:   1,
	StatusInProgress: 2,
	StatusResolved:   3,
}

// NormalizeStatus maps user input onto a canonical workflow status.
func NormalizeStatus(s string) (string, bool) {
	for status := range statusRank {
		if strings.EqualFold(strings.TrimSpace(s), status) {
			return status, true
		}
	}
	return "", false
}

// CanTransition reports whether a report may move from one status to
// another. Re-asserting the current status is allowed so assignment
// changes do not require a status bump.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	if from == StatusResolved {
		return false
	}
	return toRank >= fromRank
}

// FailureReport tracks a customer's service outage through the repair
// workflow.
type FailureReport struct {
	ID                 snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID         snowflake.ID  `gorm:"column:customer_id;not null;index" json:"customer_id"`
	ServiceType        string        `gorm:"column:service_type;type:text;not null;index" json:"service_type"`
	Description        string        `gorm:"column:description;type:text;not null" json:"description"`
	Status             string        `gorm:"column:status;type:text;not null;index" json:"status"`
	AssignedEmployeeID *snowflake.ID `gorm:"column:assigned_employee_id;index" json:"assigned_employee_id,omitempty"`
	ReportedAt         time.Time     `gorm:"column:reported_at;not null" json:"reported_at"`
	ResolutionNotes    string        `gorm:"column:resolution_notes;type:text;not null;default:''" json:"resolution_notes,omitempty"`
	ResolvedAt         *time.Time    `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	CreatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (FailureReport) TableName() string { return "failure_reports" }

// CustomerView is a report row enriched with the assigned technician's
// name, shown to the reporting customer.
type CustomerView struct {
	FailureReport
	AssignedEmployeeName string `json:"assigned_employee_name,omitempty"`
}

// StaffView adds reporter identity for staff listings.
type StaffView struct {
	FailureReport
	CustomerName         string `json:"customer_name"`
	Username             string `json:"username"`
	AssignedEmployeeName string `json:"assigned_employee_name,omitempty"`
}
