package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/auth/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, user *domain.User) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO users (id, external_id, username, display_name, role, phone, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.ExternalID,
		user.Username,
		user.DisplayName,
		user.Role,
		user.Phone,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Exec(
		`UPDATE users SET display_name = ?, phone = ?, password_hash = ?, updated_at = ? WHERE id = ?`,
		user.DisplayName,
		user.Phone,
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	).Error
}

type sessionRepo struct {
	db *gorm.DB
}

func ProvideSessions(db *gorm.DB) domain.SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) CreateSession(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO sessions (id, user_id, session_token_hash, user_agent, ip_address, expires_at, revoked_at, created_at, last_seen_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.SessionTokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.RevokedAt,
		session.CreatedAt,
		session.LastSeenAt,
	).Error
}

func (r *sessionRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Where("session_token_hash = ?", tokenHash).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) RevokeSession(ctx context.Context, id snowflake.ID, at time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		at,
		id,
	).Error
}

func (r *sessionRepo) TouchSession(ctx context.Context, id snowflake.ID, at time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE sessions SET last_seen_at = ? WHERE id = ?`,
		at,
		id,
	).Error
}
