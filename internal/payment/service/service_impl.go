package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/griddesk/griddesk/internal/billing/domain"
	"github.com/griddesk/griddesk/internal/payment/domain"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Bills billingdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	bills billingdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("payment.service"),
		genID: p.GenID,
		repo:  p.Repo,
		bills: p.Bills,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordRequest) (*domain.Payment, error) {
	if req.AmountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	method, ok := refdomain.NormalizePaymentMethod(req.Method)
	if !ok {
		return nil, domain.ErrInvalidMethod
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:          s.genID.Generate(),
		BillID:      req.BillID,
		AmountCents: req.AmountCents,
		Method:      method,
		PaidAt:      now,
		CreatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := s.bills.FindByIDForUpdate(ctx, tx, req.BillID)
		if err != nil {
			return err
		}
		if bill == nil {
			return domain.ErrBillNotFound
		}
		// Customers can only settle their own bills.
		if req.CustomerID != 0 && req.CustomerID != bill.CustomerID {
			return domain.ErrBillNotFound
		}
		if bill.Status == billingdomain.StatusPaid {
			return domain.ErrBillAlreadyPaid
		}
		if req.AmountCents > bill.BalanceCents() {
			return domain.ErrOverpayment
		}

		payment.CustomerID = bill.CustomerID
		if err := s.repo.Insert(ctx, tx, payment); err != nil {
			return err
		}

		bill.PaidCents += req.AmountCents
		if bill.PaidCents >= bill.TotalCents {
			bill.Status = billingdomain.StatusPaid
		} else {
			bill.Status = billingdomain.StatusPartiallyPaid
		}
		bill.UpdatedAt = now
		return s.bills.UpdatePaymentProgress(ctx, tx, bill)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.Int64("payment_id", int64(payment.ID)),
		zap.Int64("bill_id", int64(payment.BillID)),
		zap.Int64("amount_cents", payment.AmountCents),
		zap.String("method", method),
	)

	return payment, nil
}

func (s *Service) HistoryByUsername(ctx context.Context, username string) ([]domain.HistoryEntry, error) {
	entries, err := s.repo.HistoryByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoPayments
	}
	return entries, nil
}

func (s *Service) Ledger(ctx context.Context, from, to *time.Time) ([]domain.LedgerEntry, error) {
	return s.repo.Ledger(ctx, from, to)
}
