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
	billingdomain "github.com/griddesk/griddesk/internal/billing/domain"
	billingrepo "github.com/griddesk/griddesk/internal/billing/repository"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	"github.com/griddesk/griddesk/internal/migration"
	"github.com/griddesk/griddesk/internal/payment/domain"
	"github.com/griddesk/griddesk/internal/payment/repository"
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

func seedBill(t *testing.T, conn *gorm.DB, node *snowflake.Node, customerID snowflake.ID, totalCents int64) *billingdomain.Bill {
	t.Helper()

	now := time.Now().UTC()
	bill := &billingdomain.Bill{
		ID:          node.Generate(),
		CustomerID:  customerID,
		Month:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		TotalCents:  totalCents,
		Status:      billingdomain.StatusGenerated,
		GeneratedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, conn.Create(bill).Error)
	return bill
}

func newTestService(t *testing.T, conn *gorm.DB, node *snowflake.Node) domain.Service {
	t.Helper()
	return New(Params{
		DB:    conn,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Repo:  repository.Provide(conn),
		Bills: billingrepo.Provide(conn),
	})
}

func loadBill(t *testing.T, conn *gorm.DB, id snowflake.ID) *billingdomain.Bill {
	t.Helper()
	var bill billingdomain.Bill
	require.NoError(t, conn.First(&bill, "id = ?", id).Error)
	return &bill
}

func TestRecordPartialThenFull(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	bill := seedBill(t, conn, node, customer.ID, 10000)
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	partial, err := svc.Record(ctx, domain.RecordRequest{
		BillID:      bill.ID,
		CustomerID:  customer.ID,
		AmountCents: 4000,
		Method:      "credit card",
	})
	require.NoError(t, err)
	assert.Equal(t, refdomain.MethodCreditCard, partial.Method)
	assert.Equal(t, customer.ID, partial.CustomerID)

	updated := loadBill(t, conn, bill.ID)
	assert.Equal(t, billingdomain.StatusPartiallyPaid, updated.Status)
	assert.EqualValues(t, 4000, updated.PaidCents)

	_, err = svc.Record(ctx, domain.RecordRequest{
		BillID:      bill.ID,
		CustomerID:  customer.ID,
		AmountCents: 6000,
		Method:      refdomain.MethodBankTransfer,
	})
	require.NoError(t, err)

	settled := loadBill(t, conn, bill.ID)
	assert.Equal(t, billingdomain.StatusPaid, settled.Status)
	assert.EqualValues(t, 10000, settled.PaidCents)
	assert.EqualValues(t, 0, settled.BalanceCents())
}

func TestRecordOverpayment(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	bill := seedBill(t, conn, node, customer.ID, 5000)
	svc := newTestService(t, conn, node)

	_, err := svc.Record(context.Background(), domain.RecordRequest{
		BillID:      bill.ID,
		CustomerID:  customer.ID,
		AmountCents: 5001,
		Method:      refdomain.MethodCreditCard,
	})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	untouched := loadBill(t, conn, bill.ID)
	assert.EqualValues(t, 0, untouched.PaidCents)
}

func TestRecordOnPaidBill(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	bill := seedBill(t, conn, node, customer.ID, 5000)
	require.NoError(t, conn.Model(&billingdomain.Bill{}).
		Where("id = ?", bill.ID).
		Updates(map[string]any{"status": billingdomain.StatusPaid, "paid_cents": 5000}).Error)
	svc := newTestService(t, conn, node)

	_, err := svc.Record(context.Background(), domain.RecordRequest{
		BillID:      bill.ID,
		CustomerID:  customer.ID,
		AmountCents: 100,
		Method:      refdomain.MethodCreditCard,
	})
	assert.ErrorIs(t, err, domain.ErrBillAlreadyPaid)
}

func TestRecordOnAnotherCustomersBill(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	owner := seedCustomer(t, conn, node, "alice")
	other := seedCustomer(t, conn, node, "bob")
	bill := seedBill(t, conn, node, owner.ID, 5000)
	svc := newTestService(t, conn, node)

	_, err := svc.Record(context.Background(), domain.RecordRequest{
		BillID:      bill.ID,
		CustomerID:  other.ID,
		AmountCents: 1000,
		Method:      refdomain.MethodCreditCard,
	})
	assert.ErrorIs(t, err, domain.ErrBillNotFound)
}

func TestRecordStaffCanSettleAnyBill(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	bill := seedBill(t, conn, node, customer.ID, 5000)
	svc := newTestService(t, conn, node)

	// CustomerID zero marks a staff-recorded payment; it lands on the
	// bill owner's account.
	payment, err := svc.Record(context.Background(), domain.RecordRequest{
		BillID:      bill.ID,
		AmountCents: 5000,
		Method:      refdomain.MethodDebitCard,
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, payment.CustomerID)
}

func TestRecordValidation(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	bill := seedBill(t, conn, node, customer.ID, 5000)
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	_, err := svc.Record(ctx, domain.RecordRequest{
		BillID:      bill.ID,
		AmountCents: 0,
		Method:      refdomain.MethodCreditCard,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Record(ctx, domain.RecordRequest{
		BillID:      bill.ID,
		AmountCents: 100,
		Method:      "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)

	_, err = svc.Record(ctx, domain.RecordRequest{
		BillID:      node.Generate(),
		AmountCents: 100,
		Method:      refdomain.MethodCreditCard,
	})
	assert.ErrorIs(t, err, domain.ErrBillNotFound)
}

func TestHistoryByUsernameEmpty(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)

	_, err := svc.HistoryByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrNoPayments)
}

func TestLedgerDateWindow(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	bill := seedBill(t, conn, node, customer.ID, 20000)
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	_, err := svc.Record(ctx, domain.RecordRequest{
		BillID:      bill.ID,
		CustomerID:  customer.ID,
		AmountCents: 3000,
		Method:      refdomain.MethodCreditCard,
	})
	require.NoError(t, err)

	all, err := svc.Ledger(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].Username)

	past := time.Now().UTC().Add(-time.Hour)
	windowed, err := svc.Ledger(ctx, nil, &past)
	require.NoError(t, err)
	assert.Empty(t, windowed)
}
