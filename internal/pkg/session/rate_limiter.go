// internal/pkg/session/rate_limiter.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// CheckLoginAttempt allows up to 5 attempts per 15 minutes per ip+email.
func (r *RateLimiter) CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:login:%s:%s", ip, email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, 15*time.Minute)
	}

	maxAttempts := int64(5)
	remaining := maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= maxAttempts, remaining, nil
}

// ResetLoginAttempts clears the login attempt counter after a success.
func (r *RateLimiter) ResetLoginAttempts(ctx context.Context, ip, email string) error {
	key := fmt.Sprintf("ratelimit:login:%s:%s", ip, email)
	return r.client.Del(ctx, key).Err()
}

// CheckPasswordResetAttempt allows up to 3 reset requests per hour per email.
func (r *RateLimiter) CheckPasswordResetAttempt(ctx context.Context, email string) (bool, error) {
	key := fmt.Sprintf("ratelimit:password_reset:%s", email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment password reset attempt: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, key, 1*time.Hour)
	}
	return count <= 3, nil
}

// IsAccountTemporarilyLocked reports whether the identity is under a redis
// lock and how long remains.
func (r *RateLimiter) IsAccountTemporarilyLocked(ctx context.Context, identityID int64) (bool, time.Duration, error) {
	key := fmt.Sprintf("account:locked:%d", identityID)

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		return false, 0, nil
	}
	return true, ttl, nil
}

// LockAccount temporarily locks an account.
func (r *RateLimiter) LockAccount(ctx context.Context, identityID int64, duration time.Duration) error {
	key := fmt.Sprintf("account:locked:%d", identityID)
	return r.client.Set(ctx, key, "1", duration).Err()
}

// UnlockAccount removes a temporary lock.
func (r *RateLimiter) UnlockAccount(ctx context.Context, identityID int64) error {
	key := fmt.Sprintf("account:locked:%d", identityID)
	return r.client.Del(ctx, key).Err()
}
