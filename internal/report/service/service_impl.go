package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	employeedomain "github.com/griddesk/griddesk/internal/employee/domain"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"github.com/griddesk/griddesk/internal/report/domain"
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
	Employees employeedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	customers customerdomain.Repository
	employees employeedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("report.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		customers: p.Customers,
		employees: p.Employees,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.FailureReport, error) {
	serviceType, ok := refdomain.NormalizeServiceType(req.ServiceType)
	if !ok {
		return nil, domain.ErrInvalidServiceType
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, domain.ErrEmptyDescription
	}

	customer, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	assignee, err := s.repo.BestAssignee(ctx, serviceType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := &domain.FailureReport{
		ID:          s.genID.Generate(),
		CustomerID:  req.CustomerID,
		ServiceType: serviceType,
		Description: description,
		Status:      domain.StatusPending,
		ReportedAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if assignee != nil {
		report.Status = domain.StatusAssigned
		report.AssignedEmployeeID = assignee
	}

	if err := s.repo.Insert(ctx, nil, report); err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.Int64("report_id", int64(report.ID)),
		zap.Int64("customer_id", int64(report.CustomerID)),
		zap.String("service_type", serviceType),
		zap.String("status", report.Status),
	}
	if assignee != nil {
		fields = append(fields, zap.Int64("assigned_employee_id", int64(*assignee)))
	}
	s.log.Info("failure report filed", fields...)

	return report, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateRequest) (*domain.FailureReport, error) {
	status, ok := domain.NormalizeStatus(req.Status)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}

	report, err := s.repo.FindByID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}
	if !domain.CanTransition(report.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	if req.EmployeeID != nil {
		profile, err := s.employees.ProfileByID(ctx, *req.EmployeeID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, domain.ErrEmployeeNotFound
		}
		report.AssignedEmployeeID = req.EmployeeID
	}
	if status != domain.StatusPending && report.AssignedEmployeeID == nil {
		return nil, domain.ErrEmployeeRequired
	}

	now := time.Now().UTC()
	previous := report.Status
	report.Status = status
	report.UpdatedAt = now
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		report.ResolutionNotes = notes
	}
	if status == domain.StatusResolved && report.ResolvedAt == nil {
		report.ResolvedAt = &now
	}

	if err := s.repo.Update(ctx, nil, report); err != nil {
		return nil, err
	}

	s.log.Info("failure report updated",
		zap.Int64("report_id", int64(report.ID)),
		zap.String("from", previous),
		zap.String("to", status),
	)

	return report, nil
}

func (s *Service) ListByUsername(ctx context.Context, username string, status *string) ([]domain.CustomerView, error) {
	if status != nil {
		normalized, ok := domain.NormalizeStatus(*status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		status = &normalized
	}

	views, err := s.repo.ListByUsername(ctx, username, status)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrNoReports
	}
	return views, nil
}

func (s *Service) ListAll(ctx context.Context, filter domain.ListFilter) ([]domain.StaffView, error) {
	if filter.Status != nil {
		normalized, ok := domain.NormalizeStatus(*filter.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		filter.Status = &normalized
	}
	if filter.ServiceType != nil {
		normalized, ok := refdomain.NormalizeServiceType(*filter.ServiceType)
		if !ok {
			return nil, domain.ErrInvalidServiceType
		}
		filter.ServiceType = &normalized
	}
	return s.repo.ListAll(ctx, filter)
}
