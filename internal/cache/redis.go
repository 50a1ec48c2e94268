package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/tripavista/config"
	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/redis/go-redis/v9"
)

const pendingPayment = "pending"

// RedisCache holds the session-scoped state of the service: confirmed
// tickets, payment locks and revoked session tokens. Every key carries a
// TTL.
type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
}

func NewRedisCacheWithClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetTicket returns nil, nil when the reference is unknown or expired.
func (c *RedisCache) GetTicket(ctx context.Context, reference string) (*domain.Ticket, error) {
	data, err := c.client.Get(ctx, ticketKey(reference)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var ticket domain.Ticket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// StoreTicket writes the ticket only if its reference is free and reports
// whether it did.
func (c *RedisCache) StoreTicket(ctx context.Context, ticket domain.Ticket, ttl time.Duration) (bool, error) {
	payload, err := json.Marshal(ticket)
	if err != nil {
		return false, err
	}
	return c.client.SetNX(ctx, ticketKey(ticket.Confirmation.Reference), payload, ttl).Result()
}

func (c *RedisCache) AcquirePaymentLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, paymentLockKey(key), pendingPayment, ttl).Result()
}

func (c *RedisCache) ReleasePaymentLock(ctx context.Context, key string) error {
	return c.client.Del(ctx, paymentLockKey(key)).Err()
}

// ConfirmPayment replaces the lock with the booking reference, so the
// same draft cannot be paid again while its ticket lives.
func (c *RedisCache) ConfirmPayment(ctx context.Context, key, reference string, ttl time.Duration) error {
	return c.client.Set(ctx, paymentLockKey(key), reference, ttl).Err()
}

// ConfirmedReference returns the reference a draft was confirmed under, or
// "" while its payment is still processing or after the marker expired.
func (c *RedisCache) ConfirmedReference(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, paymentLockKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	if value == pendingPayment {
		return "", nil
	}
	return value, nil
}

func (c *RedisCache) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedTokenKey(tokenID), "1", ttl).Err()
}

func (c *RedisCache) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.client.Exists(ctx, revokedTokenKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func ticketKey(reference string) string {
	return "cache:ticket:" + reference
}

func paymentLockKey(key string) string {
	return "lock:payment:" + key
}

func revokedTokenKey(tokenID string) string {
	return "auth:revoked:" + tokenID
}
