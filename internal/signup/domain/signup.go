// Package domain describes account provisioning requests.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// SkillInput declares one employee competency at signup.
type SkillInput struct {
	ServiceType string
	Proficiency int
}

// Request provisions a user plus its role-specific profile in one shot.
type Request struct {
	Username    string
	Password    string
	DisplayName string
	Role        string
	Phone       string

	// Customer fields.
	Address        string
	Classification string

	// Employee fields.
	Position   string
	Department string
	HireDate   *time.Time
	Skills     []SkillInput
}

// Result reports the identifiers of the provisioned account.
type Result struct {
	UserID     snowflake.ID `json:"user_id"`
	Role       string       `json:"role"`
	CustomerID snowflake.ID `json:"customer_id,omitempty"`
	EmployeeID snowflake.ID `json:"employee_id,omitempty"`
}

type Service interface {
	Signup(ctx context.Context, req Request) (*Result, error)
}

var (
	ErrInvalidRequest        = errors.New("invalid_request")
	ErrInvalidRole           = errors.New("invalid_role")
	ErrInvalidClassification = errors.New("invalid_classification")
	ErrInvalidSkill          = errors.New("invalid_skill")
)
