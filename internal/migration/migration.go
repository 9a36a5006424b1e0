package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	billingdomain "github.com/griddesk/griddesk/internal/billing/domain"
	consumptiondomain "github.com/griddesk/griddesk/internal/consumption/domain"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	employeedomain "github.com/griddesk/griddesk/internal/employee/domain"
	paymentdomain "github.com/griddesk/griddesk/internal/payment/domain"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	reportdomain "github.com/griddesk/griddesk/internal/report/domain"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations applies the embedded SQL migrations so the service is
// usable out of the box on a fresh database.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate is the schema path for sqlite and mysql, where the embedded
// migrations (written for postgres) do not apply.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&customerdomain.Customer{},
		&employeedomain.Employee{},
		&employeedomain.Skill{},
		&refdomain.ServiceType{},
		&refdomain.RateClassification{},
		&refdomain.PaymentMethod{},
		&consumptiondomain.Record{},
		&billingdomain.Bill{},
		&billingdomain.LineItem{},
		&paymentdomain.Payment{},
		&reportdomain.FailureReport{},
	)
}
