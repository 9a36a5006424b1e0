package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/consumption/domain"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"github.com/griddesk/griddesk/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Customers customerdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	customers customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("consumption.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		customers: p.Customers,
	}
}

func (s *Service) Add(ctx context.Context, req domain.AddRequest) (*domain.Record, error) {
	serviceType, ok := refdomain.NormalizeServiceType(req.ServiceType)
	if !ok {
		return nil, domain.ErrInvalidServiceType
	}
	if req.Usage <= 0 {
		return nil, domain.ErrInvalidUsage
	}

	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	month := domain.NormalizeMonth(req.Month)
	now := time.Now().UTC()

	existing, err := s.repo.FindOne(ctx, req.CustomerID, serviceType, month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !req.Replace {
			return nil, domain.ErrDuplicateRecord
		}
		existing.Usage = req.Usage
		existing.UpdatedAt = now
		if err := s.repo.UpdateUsage(ctx, nil, existing); err != nil {
			return nil, err
		}
		s.log.Info("consumption record replaced",
			zap.Int64("customer_id", int64(existing.CustomerID)),
			zap.String("service_type", serviceType),
			zap.Time("month", month),
		)
		return existing, nil
	}

	record := &domain.Record{
		ID:          s.genID.Generate(),
		CustomerID:  req.CustomerID,
		ServiceType: serviceType,
		Month:       month,
		Usage:       req.Usage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, nil, record); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateRecord
		}
		return nil, err
	}

	s.log.Info("consumption record added",
		zap.Int64("customer_id", int64(record.CustomerID)),
		zap.String("service_type", serviceType),
		zap.Time("month", month),
	)
	return record, nil
}

// MonthlySummary always returns one row per known service type so the
// dashboard renders a complete table even with no readings recorded.
func (s *Service) MonthlySummary(ctx context.Context, username string, month time.Time) ([]domain.SummaryRow, error) {
	profile, err := s.customers.ProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrCustomerNotFound
	}

	records, err := s.repo.ListByUsernameMonth(ctx, username, domain.NormalizeMonth(month))
	if err != nil {
		return nil, err
	}

	usageByService := make(map[string]float64, len(records))
	for _, record := range records {
		usageByService[record.ServiceType] = record.Usage
	}

	rows := make([]domain.SummaryRow, 0, len(refdomain.ServiceTypes()))
	for _, serviceType := range refdomain.ServiceTypes() {
		row := domain.SummaryRow{ServiceType: serviceType, Classification: "N/A"}
		if usage, ok := usageByService[serviceType]; ok {
			row.Usage = usage
			row.Classification = profile.Classification
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service) ForMonth(ctx context.Context, username string, month time.Time) ([]domain.Record, error) {
	profile, err := s.customers.ProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrCustomerNotFound
	}

	records, err := s.repo.ListByUsernameMonth(ctx, username, domain.NormalizeMonth(month))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoRecords
	}
	return records, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID snowflake.ID, month *time.Time) ([]domain.Record, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	if month != nil {
		normalized := domain.NormalizeMonth(*month)
		month = &normalized
	}
	return s.repo.ListByCustomer(ctx, customerID, month)
}
