package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/billing/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

const billColumns = `id, customer_id, month, total_cents, paid_cents, status, generated_at, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bill *domain.Bill, items []domain.LineItem) error {
	if db == nil {
		db = r.db
	}
	err := db.WithContext(ctx).Exec(
		`INSERT INTO bills (id, customer_id, month, total_cents, paid_cents, status, generated_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID,
		bill.CustomerID,
		bill.Month,
		bill.TotalCents,
		bill.PaidCents,
		bill.Status,
		bill.GeneratedAt,
		bill.CreatedAt,
		bill.UpdatedAt,
	).Error
	if err != nil {
		return err
	}
	for _, item := range items {
		err = db.WithContext(ctx).Exec(
			`INSERT INTO bill_line_items (id, bill_id, service_type, usage_amount, rate_cents, amount_cents, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.BillID,
			item.ServiceType,
			item.Usage,
			item.RateCents,
			item.AmountCents,
			item.CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, billID snowflake.ID) error {
	if db == nil {
		db = r.db
	}
	if err := db.WithContext(ctx).Exec(`DELETE FROM bill_line_items WHERE bill_id = ?`, billID).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(`DELETE FROM bills WHERE id = ?`, billID).Error
}

func (r *repo) FindByID(ctx context.Context, billID snowflake.ID) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.WithContext(ctx).Raw(
		`SELECT `+billColumns+` FROM bills WHERE id = ?`,
		billID,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, billID snowflake.ID) (*domain.Bill, error) {
	if db == nil {
		db = r.db
	}
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = ?`
	// sqlite serializes writers on its own and rejects FOR UPDATE.
	if db.Dialector.Name() != "sqlite" {
		query += ` FOR UPDATE`
	}
	var bill domain.Bill
	err := db.WithContext(ctx).Raw(query, billID).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) FindByCustomerMonth(ctx context.Context, customerID snowflake.ID, month time.Time) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.WithContext(ctx).Raw(
		`SELECT `+billColumns+` FROM bills WHERE customer_id = ? AND month = ?`,
		customerID,
		month,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) Items(ctx context.Context, billID snowflake.ID) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, bill_id, service_type, usage_amount, rate_cents, amount_cents, created_at
		 FROM bill_line_items WHERE bill_id = ? ORDER BY service_type`,
		billID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListByUsername(ctx context.Context, username string) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.WithContext(ctx).Raw(
		`SELECT b.id, b.customer_id, b.month, b.total_cents, b.paid_cents, b.status, b.generated_at, b.created_at, b.updated_at
		 FROM bills b
		 JOIN customers c ON c.id = b.customer_id
		 JOIN users u ON u.id = c.user_id
		 WHERE u.username = ?
		 ORDER BY b.month DESC`,
		username,
	).Scan(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repo) PendingByUsername(ctx context.Context, username string) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.WithContext(ctx).Raw(
		`SELECT b.id, b.customer_id, b.month, b.total_cents, b.paid_cents, b.status, b.generated_at, b.created_at, b.updated_at
		 FROM bills b
		 JOIN customers c ON c.id = b.customer_id
		 JOIN users u ON u.id = c.user_id
		 WHERE u.username = ? AND b.status <> ?
		 ORDER BY b.month DESC`,
		username,
		domain.StatusPaid,
	).Scan(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repo) ListPending(ctx context.Context) ([]domain.CustomerBill, error) {
	var bills []domain.CustomerBill
	err := r.db.WithContext(ctx).Raw(
		`SELECT b.id, b.customer_id, b.month, b.total_cents, b.paid_cents, b.status, b.generated_at, b.created_at, b.updated_at,
		        u.display_name AS customer_name,
		        u.username
		 FROM bills b
		 JOIN customers c ON c.id = b.customer_id
		 JOIN users u ON u.id = c.user_id
		 WHERE b.status <> ?
		 ORDER BY b.month DESC, u.display_name`,
		domain.StatusPaid,
	).Scan(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repo) CountPayments(ctx context.Context, db *gorm.DB, billID snowflake.ID) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM payments WHERE bill_id = ?`,
		billID,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) UpdatePaymentProgress(ctx context.Context, db *gorm.DB, bill *domain.Bill) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`UPDATE bills SET paid_cents = ?, status = ?, updated_at = ? WHERE id = ?`,
		bill.PaidCents,
		bill.Status,
		bill.UpdatedAt,
		bill.ID,
	).Error
}
