// Package domain contains reference catalogs shared across services.
package domain

import (
	"strings"
	"time"
)

type ServiceType struct {
	Name      string    `json:"name" gorm:"type:text;primaryKey;column:name"`
	Unit      string    `json:"unit" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ServiceType) TableName() string { return "service_types" }

type RateClassification struct {
	Name      string    `json:"name" gorm:"type:text;primaryKey;column:name"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RateClassification) TableName() string { return "rate_classifications" }

type PaymentMethod struct {
	Name      string    `json:"name" gorm:"type:text;primaryKey;column:name"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }

const (
	ServiceElectricity = "Electricity"
	ServiceWater       = "Water"
	ServiceGas         = "Gas"
	ServiceTelecom     = "Telecom"

	ClassificationResidential  = "Residential"
	ClassificationCommercial   = "Commercial"
	ClassificationIndustrial   = "Industrial"
	ClassificationAgricultural = "Agricultural"

	MethodCreditCard   = "Credit Card"
	MethodDebitCard    = "Debit Card"
	MethodBankTransfer = "Bank Transfer"
)

// ServiceTypes lists the four billable utility services in display order.
func ServiceTypes() []string {
	return []string{ServiceElectricity, ServiceWater, ServiceGas, ServiceTelecom}
}

// NormalizeServiceType canonicalizes a service type name, reporting validity.
func NormalizeServiceType(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	for _, name := range ServiceTypes() {
		if strings.EqualFold(trimmed, name) {
			return name, true
		}
	}
	return "", false
}

// NormalizeClassification canonicalizes a rate classification.
// The legacy value "Domestic" maps to Residential.
func NormalizeClassification(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, "Domestic") {
		return ClassificationResidential, true
	}
	for _, name := range []string{
		ClassificationResidential,
		ClassificationCommercial,
		ClassificationIndustrial,
		ClassificationAgricultural,
	} {
		if strings.EqualFold(trimmed, name) {
			return name, true
		}
	}
	return "", false
}

// NormalizePaymentMethod canonicalizes a payment method name.
func NormalizePaymentMethod(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	for _, name := range []string{MethodCreditCard, MethodDebitCard, MethodBankTransfer} {
		if strings.EqualFold(trimmed, name) {
			return name, true
		}
	}
	return "", false
}
