package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	"github.com/griddesk/griddesk/internal/auth/password"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	employeedomain "github.com/griddesk/griddesk/internal/employee/domain"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"github.com/griddesk/griddesk/internal/signup/domain"
	"github.com/griddesk/griddesk/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Users     authdomain.Repository
	Customers customerdomain.Repository
	Employees employeedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	users     authdomain.Repository
	customers customerdomain.Repository
	employees employeedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("signup.service"),
		genID:     p.GenID,
		users:     p.Users,
		customers: p.Customers,
		employees: p.Employees,
	}
}

func (s *Service) Signup(ctx context.Context, req domain.Request) (*domain.Result, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidRequest
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrInvalidRequest
	}

	role, ok := authdomain.NormalizeRole(req.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, authdomain.ErrUserExists
	} else if !errors.Is(err, authdomain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := &authdomain.User{
		ID:           s.genID.Generate(),
		ExternalID:   uuid.NewString(),
		Username:     username,
		DisplayName:  displayName,
		Role:         role,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result := &domain.Result{UserID: user.ID, Role: role}

	var customer *customerdomain.Customer
	var employee *employeedomain.Employee
	var skills []employeedomain.Skill

	switch role {
	case authdomain.RoleCustomer:
		// Legacy signup payloads omit the classification; those accounts
		// start out Residential.
		classification := refdomain.ClassificationResidential
		if strings.TrimSpace(req.Classification) != "" {
			normalized, ok := refdomain.NormalizeClassification(req.Classification)
			if !ok {
				return nil, domain.ErrInvalidClassification
			}
			classification = normalized
		}
		customer = &customerdomain.Customer{
			ID:             s.genID.Generate(),
			UserID:         user.ID,
			Address:        strings.TrimSpace(req.Address),
			Classification: classification,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		result.CustomerID = customer.ID
	case authdomain.RoleEmployee, authdomain.RoleAdmin:
		hireDate := now
		if req.HireDate != nil {
			hireDate = req.HireDate.UTC()
		}
		employee = &employeedomain.Employee{
			ID:         s.genID.Generate(),
			UserID:     user.ID,
			Position:   strings.TrimSpace(req.Position),
			Department: strings.TrimSpace(req.Department),
			HireDate:   hireDate,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		result.EmployeeID = employee.ID

		for _, input := range req.Skills {
			serviceType, ok := refdomain.NormalizeServiceType(input.ServiceType)
			if !ok {
				return nil, domain.ErrInvalidSkill
			}
			if input.Proficiency < 1 || input.Proficiency > 5 {
				return nil, domain.ErrInvalidSkill
			}
			skills = append(skills, employeedomain.Skill{
				ID:          s.genID.Generate(),
				EmployeeID:  employee.ID,
				ServiceType: serviceType,
				Proficiency: input.Proficiency,
				CreatedAt:   now,
			})
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, user); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return authdomain.ErrUserExists
			}
			return err
		}
		if customer != nil {
			if err := s.customers.Insert(ctx, tx, customer); err != nil {
				return err
			}
		}
		if employee != nil {
			if err := s.employees.Insert(ctx, tx, employee); err != nil {
				return err
			}
			for i := range skills {
				if err := s.employees.InsertSkill(ctx, tx, &skills[i]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("account provisioned",
		zap.String("username", username),
		zap.String("role", role),
	)

	return result, nil
}
