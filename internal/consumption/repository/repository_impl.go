package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/consumption/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO consumption_records (id, customer_id, service_type, month, usage_amount, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.CustomerID,
		record.ServiceType,
		record.Month,
		record.Usage,
		record.CreatedAt,
		record.UpdatedAt,
	).Error
}

func (r *repo) UpdateUsage(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`UPDATE consumption_records SET usage_amount = ?, updated_at = ? WHERE id = ?`,
		record.Usage,
		record.UpdatedAt,
		record.ID,
	).Error
}

func (r *repo) FindOne(ctx context.Context, customerID snowflake.ID, serviceType string, month time.Time) (*domain.Record, error) {
	var record domain.Record
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, customer_id, service_type, month, usage_amount, created_at, updated_at
		 FROM consumption_records
		 WHERE customer_id = ? AND service_type = ? AND month = ?`,
		customerID,
		serviceType,
		month,
	).Scan(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == 0 {
		return nil, nil
	}
	return &record, nil
}

func (r *repo) ListByCustomer(ctx context.Context, customerID snowflake.ID, month *time.Time) ([]domain.Record, error) {
	query := `SELECT id, customer_id, service_type, month, usage_amount, created_at, updated_at
		 FROM consumption_records WHERE customer_id = ?`
	args := []interface{}{customerID}
	if month != nil {
		query += ` AND month = ?`
		args = append(args, *month)
	}
	query += ` ORDER BY month DESC, service_type`

	var records []domain.Record
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListByUsernameMonth(ctx context.Context, username string, month time.Time) ([]domain.Record, error) {
	var records []domain.Record
	err := r.db.WithContext(ctx).Raw(
		`SELECT cr.id, cr.customer_id, cr.service_type, cr.month, cr.usage_amount, cr.created_at, cr.updated_at
		 FROM consumption_records cr
		 JOIN customers c ON c.id = cr.customer_id
		 JOIN users u ON u.id = c.user_id
		 WHERE u.username = ? AND cr.month = ?
		 ORDER BY cr.service_type`,
		username,
		month,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
