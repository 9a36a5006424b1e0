package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/griddesk/griddesk/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyIngestUser   = "consumption:ingest:user:%s"
	keyIngestLock   = "consumption:ingest:lock:%d:%s:%s"
	ingestUserRate  = 5.0
	ingestUserBurst = 20
	ingestLockTTL   = 10 * time.Second
)

// IngestLimiter throttles consumption ingestion per staff user and
// serializes writes to the same (customer, service, month) slot. Disabled
// when no Redis address is configured; every check then passes.
type IngestLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker
}

func NewIngestLimiter(cfg config.Config) *IngestLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})

	return &IngestLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
	}
}

func (l *IngestLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *IngestLimiter) AllowUser(ctx context.Context, username string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyIngestUser, strings.TrimSpace(username)), ingestUserRate, ingestUserBurst)
}

func (l *IngestLimiter) TryLockSlot(ctx context.Context, customerID snowflake.ID, serviceType string, month time.Time) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	key := fmt.Sprintf(keyIngestLock, customerID, serviceType, month.Format("2006-01"))
	return l.locker.TryLock(ctx, key, ingestLockTTL)
}

func (l *IngestLimiter) ReleaseSlot(ctx context.Context, customerID snowflake.ID, serviceType string, month time.Time, token string) error {
	if !l.Enabled() {
		return nil
	}
	key := fmt.Sprintf(keyIngestLock, customerID, serviceType, month.Format("2006-01"))
	return l.locker.Release(ctx, key, token)
}
