// Package domain contains core types for the auth service.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleCustomer = "Customer"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// NormalizeRole canonicalizes a role name, reporting validity.
func NormalizeRole(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	for _, role := range []string{RoleCustomer, RoleEmployee, RoleAdmin} {
		if strings.EqualFold(trimmed, role) {
			return role, true
		}
	}
	return "", false
}

// IsStaffRole reports whether the role grants employee-dashboard access.
func IsStaffRole(role string) bool {
	return role == RoleEmployee || role == RoleAdmin
}

// User represents a system user account.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	ExternalID   string       `gorm:"column:external_id;type:text;not null;uniqueIndex"`
	Username     string       `gorm:"type:text;not null;uniqueIndex"`
	DisplayName  string       `gorm:"column:display_name;type:text;not null"`
	Role         string       `gorm:"type:text;not null;index"`
	Phone        string       `gorm:"type:text"`
	PasswordHash string       `gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

type LoginRequest struct {
	Username  string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult carries the raw token exactly once; only its hash is stored.
type LoginResult struct {
	UserID    snowflake.ID
	Username  string
	Role      string
	RawToken  string
	ExpiresAt time.Time
}
