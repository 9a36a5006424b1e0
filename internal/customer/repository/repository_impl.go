package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (id, user_id, address, classification, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.UserID,
		customer.Address,
		customer.Classification,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, user_id, address, classification, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) FindByUserID(ctx context.Context, userID snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, user_id, address, classification, created_at, updated_at
		 FROM customers WHERE user_id = ?`,
		userID,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`UPDATE customers SET address = ?, classification = ?, updated_at = ? WHERE id = ?`,
		customer.Address,
		customer.Classification,
		customer.UpdatedAt,
		customer.ID,
	).Error
}

const profileSelect = `
	SELECT c.id AS customer_id,
	       u.id AS user_id,
	       u.username,
	       u.display_name,
	       u.phone,
	       c.address,
	       c.classification
	FROM customers c
	JOIN users u ON u.id = c.user_id`

func (r *repo) ProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Raw(
		profileSelect+` WHERE u.username = ?`,
		username,
	).Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.CustomerID == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (r *repo) ProfileByID(ctx context.Context, customerID snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Raw(
		profileSelect+` WHERE c.id = ?`,
		customerID,
	).Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.CustomerID == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (r *repo) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := r.db.WithContext(ctx).Raw(
		profileSelect + ` ORDER BY u.display_name, c.id`,
	).Scan(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
