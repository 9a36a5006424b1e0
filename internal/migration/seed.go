package migration

import (
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedReferenceData upserts the reference catalogs. Safe to run on every
// startup.
func SeedReferenceData(conn *gorm.DB) error {
	serviceTypes := []refdomain.ServiceType{
		{Name: refdomain.ServiceElectricity, Unit: "kWh"},
		{Name: refdomain.ServiceWater, Unit: "m3"},
		{Name: refdomain.ServiceGas, Unit: "m3"},
		{Name: refdomain.ServiceTelecom, Unit: "GB"},
	}
	if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&serviceTypes).Error; err != nil {
		return err
	}

	classifications := []refdomain.RateClassification{
		{Name: refdomain.ClassificationResidential},
		{Name: refdomain.ClassificationCommercial},
		{Name: refdomain.ClassificationIndustrial},
		{Name: refdomain.ClassificationAgricultural},
	}
	if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&classifications).Error; err != nil {
		return err
	}

	methods := []refdomain.PaymentMethod{
		{Name: refdomain.MethodCreditCard},
		{Name: refdomain.MethodDebitCard},
		{Name: refdomain.MethodBankTransfer},
	}
	return conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&methods).Error
}
