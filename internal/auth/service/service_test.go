package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/griddesk/griddesk/internal/auth/domain"
	"github.com/griddesk/griddesk/internal/auth/password"
	"github.com/griddesk/griddesk/internal/auth/repository"
	"github.com/griddesk/griddesk/internal/migration"
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
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) (domain.Service, domain.SessionRepository, *snowflake.Node) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	sessions := repository.ProvideSessions(conn)
	svc := New(Params{
		Log:         zaptest.NewLogger(t),
		Repo:        repository.Provide(conn),
		SessionRepo: sessions,
		GenID:       node,
	})
	return svc, sessions, node
}

func seedUser(t *testing.T, conn *gorm.DB, node *snowflake.Node, username, plaintext string) *domain.User {
	t.Helper()

	hashed, err := password.Hash(plaintext)
	require.NoError(t, err)

	now := time.Now().UTC()
	user := &domain.User{
		ID:           node.Generate(),
		ExternalID:   uuid.NewString(),
		Username:     username,
		DisplayName:  username,
		Role:         domain.RoleCustomer,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func TestLoginAndAuthenticate(t *testing.T) {
	conn := setupTestDB(t)
	svc, _, node := newTestService(t, conn)
	user := seedUser(t, conn, node, "alice", "correct-horse")
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, domain.RoleCustomer, result.Role)
	require.NotEmpty(t, result.RawToken)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), result.ExpiresAt, time.Minute)

	session, err := svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	conn := setupTestDB(t)
	svc, _, node := newTestService(t, conn)
	seedUser(t, conn, node, "alice", "correct-horse")

	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	conn := setupTestDB(t)
	svc, _, _ := newTestService(t, conn)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogoutRevokesSession(t *testing.T) {
	conn := setupTestDB(t)
	svc, _, node := newTestService(t, conn)
	seedUser(t, conn, node, "alice", "correct-horse")
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	conn := setupTestDB(t)
	svc, sessions, node := newTestService(t, conn)
	user := seedUser(t, conn, node, "alice", "correct-horse")
	ctx := context.Background()

	rawToken := "expired-token"
	now := time.Now().UTC()
	session := &domain.Session{
		ID:               node.Generate(),
		UserID:           user.ID,
		SessionTokenHash: HashToken(rawToken),
		ExpiresAt:        now.Add(-time.Minute),
		CreatedAt:        now.Add(-2 * time.Hour),
		LastSeenAt:       now.Add(-2 * time.Hour),
	}
	require.NoError(t, sessions.CreateSession(ctx, session))

	_, err := svc.Authenticate(ctx, rawToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	conn := setupTestDB(t)
	svc, _, _ := newTestService(t, conn)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = svc.Authenticate(ctx, "not-a-real-token")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}
