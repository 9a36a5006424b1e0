package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/billing/domain"
	"github.com/griddesk/griddesk/internal/billing/render"
	"github.com/griddesk/griddesk/internal/config"
	consumptiondomain "github.com/griddesk/griddesk/internal/consumption/domain"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Consumption consumptiondomain.Repository
	Customers   customerdomain.Repository
	Tariffs     *config.TariffHolder
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	consumption consumptiondomain.Repository
	customers   customerdomain.Repository
	tariffs     *config.TariffHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("billing.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		consumption: p.Consumption,
		customers:   p.Customers,
		tariffs:     p.Tariffs,
	}
}

func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.Detail, error) {
	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	month := consumptiondomain.NormalizeMonth(req.Month)

	records, err := s.consumption.ListByCustomer(ctx, req.CustomerID, &month)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoConsumption
	}

	existing, err := s.repo.FindByCustomerMonth(ctx, req.CustomerID, month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !req.Force {
			return nil, domain.ErrBillExists
		}
		count, err := s.repo.CountPayments(ctx, nil, existing.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, domain.ErrBillHasPayments
		}
	}

	tariff := s.tariffs.Get()
	now := time.Now().UTC()

	bill := &domain.Bill{
		ID:          s.genID.Generate(),
		CustomerID:  req.CustomerID,
		Month:       month,
		Status:      domain.StatusGenerated,
		GeneratedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	items := make([]domain.LineItem, 0, len(records))
	for _, record := range records {
		rate, ok := tariff.RateFor(record.ServiceType, customer.Classification)
		if !ok {
			return nil, domain.ErrNoTariff
		}
		amount := int64(math.Floor(record.Usage * float64(rate)))
		if amount < tariff.MinimumChargeCents {
			amount = tariff.MinimumChargeCents
		}
		items = append(items, domain.LineItem{
			ID:          s.genID.Generate(),
			BillID:      bill.ID,
			ServiceType: record.ServiceType,
			Usage:       record.Usage,
			RateCents:   rate,
			AmountCents: amount,
			CreatedAt:   now,
		})
		bill.TotalCents += amount
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if existing != nil {
			if err := s.repo.Delete(ctx, tx, existing.ID); err != nil {
				return err
			}
		}
		return s.repo.Insert(ctx, tx, bill, items)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bill generated",
		zap.Int64("bill_id", int64(bill.ID)),
		zap.Int64("customer_id", int64(bill.CustomerID)),
		zap.Time("month", month),
		zap.Int64("total_cents", bill.TotalCents),
		zap.Bool("regenerated", existing != nil),
	)

	return &domain.Detail{Bill: *bill, Items: items}, nil
}

func (s *Service) Detail(ctx context.Context, billID snowflake.ID) (*domain.Detail, error) {
	bill, err := s.repo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrBillNotFound
	}
	items, err := s.repo.Items(ctx, billID)
	if err != nil {
		return nil, err
	}
	return &domain.Detail{Bill: *bill, Items: items}, nil
}

func (s *Service) ListByUsername(ctx context.Context, username string) ([]domain.Bill, error) {
	bills, err := s.repo.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, domain.ErrNoBills
	}
	return bills, nil
}

func (s *Service) PendingByUsername(ctx context.Context, username string) ([]domain.Bill, error) {
	bills, err := s.repo.PendingByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, domain.ErrNoBills
	}
	return bills, nil
}

func (s *Service) ListPending(ctx context.Context) ([]domain.CustomerBill, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) Statement(ctx context.Context, billID snowflake.ID) ([]byte, error) {
	detail, err := s.Detail(ctx, billID)
	if err != nil {
		return nil, err
	}

	profile, err := s.customers.ProfileByID(ctx, detail.Bill.CustomerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrCustomerNotFound
	}

	data := render.StatementData{
		BillNumber:   detail.Bill.ID.String(),
		CustomerName: profile.DisplayName,
		Address:      profile.Address,
		Month:        detail.Bill.Month.Format("January 2006"),
		Status:       detail.Bill.Status,
		Total:        formatCents(detail.Bill.TotalCents),
		Paid:         formatCents(detail.Bill.PaidCents),
		Balance:      formatCents(detail.Bill.BalanceCents()),
		GeneratedAt:  detail.Bill.GeneratedAt.Format("2006-01-02"),
	}
	for _, item := range detail.Items {
		data.Items = append(data.Items, render.StatementItem{
			ServiceType: item.ServiceType,
			Usage:       fmt.Sprintf("%.2f", item.Usage),
			Rate:        formatCents(item.RateCents),
			Amount:      formatCents(item.AmountCents),
		})
	}

	return render.Statement(data)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
