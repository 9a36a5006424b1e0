package service

import (
	"context"
	"strings"
	"time"

	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	"github.com/griddesk/griddesk/internal/auth/password"
	"github.com/griddesk/griddesk/internal/customer/domain"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
	"github.com/bwmarrin/snowflake"
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
		log:   p.Log.Named("customer.service"),
		repo:  p.Repo,
		users: p.Users,
	}
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
	return profile, nil
}

func (s *Service) GetByID(ctx context.Context, customerID snowflake.ID) (*domain.Profile, error) {
	profile, err := s.repo.ProfileByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Profile, error) {
	return s.repo.ListProfiles(ctx)
}

func (s *Service) UpdateInfo(ctx context.Context, req domain.UpdateInfoRequest) error {
	if req.Password == nil && req.Phone == nil && req.Address == nil && req.Classification == nil {
		return domain.ErrNothingToUpdate
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	customer, err := s.repo.FindByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if customer == nil {
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
	if req.Classification != nil {
		normalized, ok := refdomain.NormalizeClassification(*req.Classification)
		if !ok {
			return domain.ErrInvalidClassification
		}
		customer.Classification = normalized
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}

	customer.UpdatedAt = time.Now().UTC()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Password != nil || req.Phone != nil {
			if err := s.users.Update(ctx, user); err != nil {
				return err
			}
		}
		if req.Address != nil || req.Classification != nil {
			if err := s.repo.Update(ctx, tx, customer); err != nil {
				return err
			}
		}
		return nil
	})
}
