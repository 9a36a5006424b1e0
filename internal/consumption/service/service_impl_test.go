package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	"github.com/griddesk/griddesk/internal/consumption/domain"
	"github.com/griddesk/griddesk/internal/consumption/repository"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	customerrepo "github.com/griddesk/griddesk/internal/customer/repository"
	"github.com/griddesk/griddesk/internal/migration"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))
	require.NoError(t, migration.SeedReferenceData(conn))
	return conn
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func seedCustomer(t *testing.T, conn *gorm.DB, node *snowflake.Node, username string) *customerdomain.Customer {
	t.Helper()

	now := time.Now().UTC()
	user := &authdomain.User{
		ID:           node.Generate(),
		ExternalID:   uuid.NewString(),
		Username:     username,
		DisplayName:  username,
		Role:         authdomain.RoleCustomer,
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, conn.Create(user).Error)

	customer := &customerdomain.Customer{
		ID:             node.Generate(),
		UserID:         user.ID,
		Address:        "12 Main St",
		Classification: refdomain.ClassificationResidential,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, conn.Create(customer).Error)
	return customer
}

func newTestService(t *testing.T, conn *gorm.DB, node *snowflake.Node) domain.Service {
	t.Helper()
	return New(Params{
		DB:        conn,
		Log:       zaptest.NewLogger(t),
		GenID:     node,
		Repo:      repository.Provide(conn),
		Customers: customerrepo.Provide(conn),
	})
}

func TestAddRejectsUnknownServiceType(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)

	_, err := svc.Add(context.Background(), domain.AddRequest{
		CustomerID:  customer.ID,
		ServiceType: "Internet",
		Month:       time.Now().UTC(),
		Usage:       10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidServiceType)
}

func TestAddRejectsNonPositiveUsage(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)

	_, err := svc.Add(context.Background(), domain.AddRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceElectricity,
		Month:       time.Now().UTC(),
		Usage:       0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUsage)
}

func TestAddUnknownCustomer(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	svc := newTestService(t, conn, node)

	_, err := svc.Add(context.Background(), domain.AddRequest{
		CustomerID:  node.Generate(),
		ServiceType: refdomain.ServiceElectricity,
		Month:       time.Now().UTC(),
		Usage:       10,
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestAddDuplicateAndReplace(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	month := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	req := domain.AddRequest{
		CustomerID:  customer.ID,
		ServiceType: "electricity",
		Month:       month,
		Usage:       120.5,
	}

	first, err := svc.Add(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, refdomain.ServiceElectricity, first.ServiceType)
	assert.Equal(t, domain.NormalizeMonth(month), first.Month)

	_, err = svc.Add(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateRecord)

	req.Usage = 99
	req.Replace = true
	replaced, err := svc.Add(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replaced.ID)
	assert.Equal(t, 99.0, replaced.Usage)

	var count int64
	require.NoError(t, conn.Model(&domain.Record{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMonthlySummaryAlwaysFourRows(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	month := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Add(ctx, domain.AddRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceElectricity,
		Month:       month,
		Usage:       150,
	})
	require.NoError(t, err)

	rows, err := svc.MonthlySummary(ctx, "alice", month)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byService := make(map[string]domain.SummaryRow, len(rows))
	for _, row := range rows {
		byService[row.ServiceType] = row
	}

	assert.Equal(t, 150.0, byService[refdomain.ServiceElectricity].Usage)
	assert.Equal(t, refdomain.ClassificationResidential, byService[refdomain.ServiceElectricity].Classification)

	assert.Equal(t, 0.0, byService[refdomain.ServiceWater].Usage)
	assert.Equal(t, "N/A", byService[refdomain.ServiceWater].Classification)
	assert.Equal(t, "N/A", byService[refdomain.ServiceGas].Classification)
	assert.Equal(t, "N/A", byService[refdomain.ServiceTelecom].Classification)
}

func TestForMonthNoRecords(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)

	_, err := svc.ForMonth(context.Background(), "alice", time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrNoRecords)
}

func TestListByCustomerNormalizesMonth(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.AddRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceWater,
		Month:       time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC),
		Usage:       8,
	})
	require.NoError(t, err)

	midMonth := time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC)
	records, err := svc.ListByCustomer(ctx, customer.ID, &midMonth)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, refdomain.ServiceWater, records[0].ServiceType)
}
