package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	"github.com/griddesk/griddesk/internal/auth/password"
	"github.com/griddesk/griddesk/internal/employee/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  domain.Repository
	Users authdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	users authdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("employee.service"),
		repo:  p.Repo,
		users: p.Users,
	}
}

func (s *Service) GetProfile(ctx context.Context, employeeID snowflake.ID) (*domain.Profile, error) {
	profile, err := s.repo.ProfileByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return s.attachSkills(ctx, profile)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrNotFound
	}
	profile, err := s.repo.ProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return s.attachSkills(ctx, profile)
}

func (s *Service) Stats(ctx context.Context, employeeID snowflake.ID) (*domain.Stats, error) {
	profile, err := s.repo.ProfileByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.Stats(ctx, employeeID)
}

func (s *Service) UpdateInfo(ctx context.Context, req domain.UpdateInfoRequest) error {
	if req.Password == nil && req.Phone == nil && req.Position == nil && req.Department == nil {
		return domain.ErrNothingToUpdate
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	employee, err := s.repo.FindByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}

	if req.Password != nil {
		if len(strings.TrimSpace(*req.Password)) < minPasswordLength {
			return domain.ErrInvalidPassword
		}
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hashed
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Position != nil {
		employee.Position = strings.TrimSpace(*req.Position)
	}
	if req.Department != nil {
		employee.Department = strings.TrimSpace(*req.Department)
	}

	employee.UpdatedAt = time.Now().UTC()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Password != nil || req.Phone != nil {
			if err := s.users.Update(ctx, user); err != nil {
				return err
			}
		}
		if req.Position != nil || req.Department != nil {
			if err := s.repo.Update(ctx, tx, employee); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) attachSkills(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	skills, err := s.repo.Skills(ctx, profile.EmployeeID)
	if err != nil {
		return nil, err
	}
	profile.Skills = skills
	return profile, nil
}
