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
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	customerrepo "github.com/griddesk/griddesk/internal/customer/repository"
	employeedomain "github.com/griddesk/griddesk/internal/employee/domain"
	employeerepo "github.com/griddesk/griddesk/internal/employee/repository"
	"github.com/griddesk/griddesk/internal/migration"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"github.com/griddesk/griddesk/internal/report/domain"
	"github.com/griddesk/griddesk/internal/report/repository"
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

func seedUser(t *testing.T, conn *gorm.DB, node *snowflake.Node, username, role string) *authdomain.User {
	t.Helper()

	now := time.Now().UTC()
	user := &authdomain.User{
		ID:           node.Generate(),
		ExternalID:   uuid.NewString(),
		Username:     username,
		DisplayName:  username,
		Role:         role,
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func seedCustomer(t *testing.T, conn *gorm.DB, node *snowflake.Node, username string) *customerdomain.Customer {
	t.Helper()

	user := seedUser(t, conn, node, username, authdomain.RoleCustomer)
	now := time.Now().UTC()
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

func seedEmployee(t *testing.T, conn *gorm.DB, node *snowflake.Node, username string, skills map[string]int) *employeedomain.Employee {
	t.Helper()

	user := seedUser(t, conn, node, username, authdomain.RoleEmployee)
	now := time.Now().UTC()
	employee := &employeedomain.Employee{
		ID:         node.Generate(),
		UserID:     user.ID,
		Position:   "Technician",
		Department: "Field Operations",
		HireDate:   now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, conn.Create(employee).Error)

	for serviceType, proficiency := range skills {
		skill := &employeedomain.Skill{
			ID:          node.Generate(),
			EmployeeID:  employee.ID,
			ServiceType: serviceType,
			Proficiency: proficiency,
			CreatedAt:   now,
		}
		require.NoError(t, conn.Create(skill).Error)
	}
	return employee
}

func newTestService(t *testing.T, conn *gorm.DB, node *snowflake.Node) domain.Service {
	t.Helper()
	return New(Params{
		DB:        conn,
		Log:       zaptest.NewLogger(t),
		GenID:     node,
		Repo:      repository.Provide(conn),
		Customers: customerrepo.Provide(conn),
		Employees: employeerepo.Provide(conn),
	})
}

func TestCreateAssignsMostSkilledEmployee(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	seedEmployee(t, conn, node, "junior", map[string]int{refdomain.ServiceElectricity: 2})
	expert := seedEmployee(t, conn, node, "senior", map[string]int{refdomain.ServiceElectricity: 5})
	svc := newTestService(t, conn, node)

	report, err := svc.Create(context.Background(), domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: "electricity",
		Description: "Power outage on the whole street",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAssigned, report.Status)
	require.NotNil(t, report.AssignedEmployeeID)
	assert.Equal(t, expert.ID, *report.AssignedEmployeeID)
}

func TestCreateWithoutMatchingSkillStaysPending(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	seedEmployee(t, conn, node, "sparky", map[string]int{refdomain.ServiceElectricity: 5})
	svc := newTestService(t, conn, node)

	report, err := svc.Create(context.Background(), domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceWater,
		Description: "No water pressure",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, report.Status)
	assert.Nil(t, report.AssignedEmployeeID)
}

func TestCreateBalancesLoadAcrossEqualSkills(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	first := seedEmployee(t, conn, node, "tech-a", map[string]int{refdomain.ServiceGas: 4})
	second := seedEmployee(t, conn, node, "tech-b", map[string]int{refdomain.ServiceGas: 4})
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	one, err := svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceGas,
		Description: "Gas smell near the meter",
	})
	require.NoError(t, err)
	require.NotNil(t, one.AssignedEmployeeID)
	assert.Equal(t, first.ID, *one.AssignedEmployeeID)

	two, err := svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceGas,
		Description: "Pilot light keeps going out",
	})
	require.NoError(t, err)
	require.NotNil(t, two.AssignedEmployeeID)
	assert.Equal(t, second.ID, *two.AssignedEmployeeID)
}

func TestCreateValidation(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: "Cable",
		Description: "fuzzy picture",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidServiceType)

	_, err = svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceWater,
		Description: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyDescription)

	_, err = svc.Create(ctx, domain.CreateRequest{
		CustomerID:  node.Generate(),
		ServiceType: refdomain.ServiceWater,
		Description: "No water",
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestUpdateStatusWorkflow(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	seedEmployee(t, conn, node, "tech", map[string]int{refdomain.ServiceTelecom: 3})
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	report, err := svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceTelecom,
		Description: "Fiber line down",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusAssigned, report.Status)

	inProgress, err := svc.UpdateStatus(ctx, domain.UpdateRequest{
		ReportID: report.ID,
		Status:   "in progress",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, inProgress.Status)
	assert.Nil(t, inProgress.ResolvedAt)

	resolved, err := svc.UpdateStatus(ctx, domain.UpdateRequest{
		ReportID: report.ID,
		Status:   domain.StatusResolved,
		Notes:    "Spliced the damaged section",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, resolved.Status)
	assert.Equal(t, "Spliced the damaged section", resolved.ResolutionNotes)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = svc.UpdateStatus(ctx, domain.UpdateRequest{
		ReportID: report.ID,
		Status:   domain.StatusInProgress,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatusRequiresAssignee(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	// No employees exist, so the report stays unassigned.
	report, err := svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceWater,
		Description: "Burst pipe",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, report.Status)

	_, err = svc.UpdateStatus(ctx, domain.UpdateRequest{
		ReportID: report.ID,
		Status:   domain.StatusInProgress,
	})
	assert.ErrorIs(t, err, domain.ErrEmployeeRequired)

	tech := seedEmployee(t, conn, node, "tech", map[string]int{refdomain.ServiceWater: 3})
	updated, err := svc.UpdateStatus(ctx, domain.UpdateRequest{
		ReportID:   report.ID,
		Status:     domain.StatusAssigned,
		EmployeeID: &tech.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, updated.Status)
	require.NotNil(t, updated.AssignedEmployeeID)
	assert.Equal(t, tech.ID, *updated.AssignedEmployeeID)
}

func TestUpdateStatusUnknownEmployee(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	report, err := svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceWater,
		Description: "Burst pipe",
	})
	require.NoError(t, err)

	ghost := node.Generate()
	_, err = svc.UpdateStatus(ctx, domain.UpdateRequest{
		ReportID:   report.ID,
		Status:     domain.StatusAssigned,
		EmployeeID: &ghost,
	})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestListByUsername(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	seedEmployee(t, conn, node, "tech", map[string]int{refdomain.ServiceElectricity: 4})
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	_, err := svc.ListByUsername(ctx, "alice", nil)
	assert.ErrorIs(t, err, domain.ErrNoReports)

	_, err = svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceElectricity,
		Description: "Flickering lights",
	})
	require.NoError(t, err)

	views, err := svc.ListByUsername(ctx, "alice", nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "tech", views[0].AssignedEmployeeName)

	status := "resolved"
	_, err = svc.ListByUsername(ctx, "alice", &status)
	assert.ErrorIs(t, err, domain.ErrNoReports)
}

func TestListAllFilters(t *testing.T) {
	conn := setupTestDB(t)
	node := mustNode(t)
	customer := seedCustomer(t, conn, node, "alice")
	svc := newTestService(t, conn, node)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceElectricity,
		Description: "Flickering lights",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{
		CustomerID:  customer.ID,
		ServiceType: refdomain.ServiceWater,
		Description: "Low pressure",
	})
	require.NoError(t, err)

	all, err := svc.ListAll(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	serviceType := "water"
	filtered, err := svc.ListAll(ctx, domain.ListFilter{ServiceType: &serviceType})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, refdomain.ServiceWater, filtered[0].ServiceType)
	assert.Equal(t, "alice", filtered[0].Username)

	bogus := "closed"
	_, err = svc.ListAll(ctx, domain.ListFilter{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
