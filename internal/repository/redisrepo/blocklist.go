package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blocklist:"

// Retention matches the longest-lived access token, so an entry
// outlives the token it revokes and then expires on its own
const DefaultRetention = time.Hour

// TokenBlocklist records revoked token ids (jti) in Redis.
// Presence of a key means the token must be rejected even if its
// signature and expiry are still valid.
type TokenBlocklist struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenBlocklist(client *redis.Client, ttl time.Duration) *TokenBlocklist {
	if ttl <= 0 {
		ttl = DefaultRetention
	}

	return &TokenBlocklist{
		client: client,
		ttl:    ttl,
	}
}

// Revoke inserts the token id with the retention TTL. Idempotent.
func (b *TokenBlocklist) Revoke(ctx context.Context, jti string) error {
	if err := b.client.Set(ctx, keyPrefix+jti, "", b.ttl).Err(); err != nil {
		return fmt.Errorf("redis set jti: %w", err)
	}

	return nil
}

// IsRevoked reports whether the token id is present in the blocklist.
// A store error is returned as is: unreachable Redis must never read
// as "not revoked", that would undo every logout.
func (b *TokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists jti: %w", err)
	}

	return n > 0, nil
}
