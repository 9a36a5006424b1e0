package repository

import (
	"context"
	"time"

	"github.com/griddesk/griddesk/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO payments (id, bill_id, customer_id, amount_cents, method, paid_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.BillID,
		payment.CustomerID,
		payment.AmountCents,
		payment.Method,
		payment.PaidAt,
		payment.CreatedAt,
	).Error
}

func (r *repo) HistoryByUsername(ctx context.Context, username string) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	err := r.db.WithContext(ctx).Raw(
		`SELECT p.id AS payment_id,
		        p.bill_id,
		        b.month AS bill_month,
		        p.amount_cents,
		        p.method,
		        p.paid_at,
		        b.status AS bill_status
		 FROM payments p
		 JOIN bills b ON b.id = p.bill_id
		 JOIN customers c ON c.id = p.customer_id
		 JOIN users u ON u.id = c.user_id
		 WHERE u.username = ?
		 ORDER BY p.paid_at DESC`,
		username,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) Ledger(ctx context.Context, from, to *time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT p.id AS payment_id,
		        p.bill_id,
		        b.month AS bill_month,
		        p.customer_id,
		        u.display_name AS customer_name,
		        u.username,
		        p.amount_cents,
		        p.method,
		        p.paid_at
		 FROM payments p
		 JOIN bills b ON b.id = p.bill_id
		 JOIN customers c ON c.id = p.customer_id
		 JOIN users u ON u.id = c.user_id
		 WHERE 1 = 1`
	var args []interface{}
	if from != nil {
		query += ` AND p.paid_at >= ?`
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND p.paid_at < ?`
		args = append(args, *to)
	}
	query += ` ORDER BY p.paid_at DESC`

	var entries []domain.LedgerEntry
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
