package domain

import "context"

type Repository interface {
	ListServiceTypes(ctx context.Context) ([]ServiceType, error)
	ListClassifications(ctx context.Context) ([]RateClassification, error)
	ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
}
