package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, report *FailureReport) error
	FindByID(ctx context.Context, reportID snowflake.ID) (*FailureReport, error)
	Update(ctx context.Context, db *gorm.DB, report *FailureReport) error
	ListByUsername(ctx context.Context, username string, status *string) ([]CustomerView, error)
	ListAll(ctx context.Context, filter ListFilter) ([]StaffView, error)

	// BestAssignee picks the technician for a new report: skilled in the
	// service, highest proficiency first, fewest open reports next.
	BestAssignee(ctx context.Context, serviceType string) (*snowflake.ID, error)
}
