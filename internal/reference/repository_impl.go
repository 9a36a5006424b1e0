package reference

import (
	"context"

	"github.com/griddesk/griddesk/internal/reference/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	var rows []domain.ServiceType
	err := r.db.WithContext(ctx).
		Raw(`SELECT name, unit FROM service_types ORDER BY name`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListClassifications(ctx context.Context) ([]domain.RateClassification, error) {
	var rows []domain.RateClassification
	err := r.db.WithContext(ctx).
		Raw(`SELECT name FROM rate_classifications ORDER BY name`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var rows []domain.PaymentMethod
	err := r.db.WithContext(ctx).
		Raw(`SELECT name FROM payment_methods ORDER BY name`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
