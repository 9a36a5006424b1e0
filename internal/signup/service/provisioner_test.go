package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	authrepo "github.com/griddesk/griddesk/internal/auth/repository"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	customerrepo "github.com/griddesk/griddesk/internal/customer/repository"
	employeedomain "github.com/griddesk/griddesk/internal/employee/domain"
	employeerepo "github.com/griddesk/griddesk/internal/employee/repository"
	"github.com/griddesk/griddesk/internal/migration"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"github.com/griddesk/griddesk/internal/signup/domain"
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

func newTestService(t *testing.T, conn *gorm.DB) domain.Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:        conn,
		Log:       zaptest.NewLogger(t),
		GenID:     node,
		Users:     authrepo.Provide(conn),
		Customers: customerrepo.Provide(conn),
		Employees: employeerepo.Provide(conn),
	})
}

func TestSignupCustomerDefaultsToResidential(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)

	result, err := svc.Signup(context.Background(), domain.Request{
		Username: "alice",
		Password: "correct-horse",
		Role:     "customer",
		Address:  "12 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleCustomer, result.Role)
	require.NotZero(t, result.CustomerID)
	assert.Zero(t, result.EmployeeID)

	var customer customerdomain.Customer
	require.NoError(t, conn.First(&customer, "id = ?", result.CustomerID).Error)
	assert.Equal(t, refdomain.ClassificationResidential, customer.Classification)
}

func TestSignupCustomerLegacyClassification(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)

	result, err := svc.Signup(context.Background(), domain.Request{
		Username:       "bob",
		Password:       "correct-horse",
		Role:           authdomain.RoleCustomer,
		Classification: "Domestic",
	})
	require.NoError(t, err)

	var customer customerdomain.Customer
	require.NoError(t, conn.First(&customer, "id = ?", result.CustomerID).Error)
	assert.Equal(t, refdomain.ClassificationResidential, customer.Classification)
}

func TestSignupDuplicateUsername(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	req := domain.Request{
		Username: "alice",
		Password: "correct-horse",
		Role:     authdomain.RoleCustomer,
	}
	_, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, authdomain.ErrUserExists)
}

func TestSignupEmployeeWithSkills(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)

	result, err := svc.Signup(context.Background(), domain.Request{
		Username:   "tech",
		Password:   "correct-horse",
		Role:       authdomain.RoleEmployee,
		Position:   "Technician",
		Department: "Field Operations",
		Skills: []domain.SkillInput{
			{ServiceType: "electricity", Proficiency: 5},
			{ServiceType: refdomain.ServiceGas, Proficiency: 2},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, result.EmployeeID)
	assert.Zero(t, result.CustomerID)

	var skills []employeedomain.Skill
	require.NoError(t, conn.Where("employee_id = ?", result.EmployeeID).Order("proficiency DESC").Find(&skills).Error)
	require.Len(t, skills, 2)
	assert.Equal(t, refdomain.ServiceElectricity, skills[0].ServiceType)
	assert.Equal(t, 5, skills[0].Proficiency)
}

func TestSignupValidation(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.Request{Username: "", Password: "correct-horse", Role: authdomain.RoleCustomer})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = svc.Signup(ctx, domain.Request{Username: "alice", Password: "short", Role: authdomain.RoleCustomer})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = svc.Signup(ctx, domain.Request{Username: "alice", Password: "correct-horse", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = svc.Signup(ctx, domain.Request{
		Username:       "alice",
		Password:       "correct-horse",
		Role:           authdomain.RoleCustomer,
		Classification: "Orbital",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidClassification)

	_, err = svc.Signup(ctx, domain.Request{
		Username: "tech",
		Password: "correct-horse",
		Role:     authdomain.RoleEmployee,
		Skills:   []domain.SkillInput{{ServiceType: refdomain.ServiceGas, Proficiency: 9}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSkill)
}
