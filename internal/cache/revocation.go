package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:"

// RevokeToken blacklists a token's jti until the token would have expired
// anyway. Used by logout; a nil client makes this a no-op.
func RevokeToken(ctx context.Context, rdb *redis.Client, jti string, until time.Time) error {
	if rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsTokenRevoked reports whether a token's jti has been blacklisted.
// Without Redis, revocation checks degrade to allowing the token; the token
// still expires on its own.
func IsTokenRevoked(ctx context.Context, rdb *redis.Client, jti string) bool {
	if rdb == nil || jti == "" {
		return false
	}
	n, err := rdb.Exists(ctx, blacklistPrefix+jti).Result()
	return err == nil && n > 0
}
