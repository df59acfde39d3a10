// Copyright (c) 2026 ComicHub. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/constants"
)

// # Redis Token Repository

// redisTokenRepository implements [TokenRepository] using Redis key TTLs.
//
// Tokens are opaque random strings; the value stored under each key is the
// bound account ID. Expiry is enforced by Redis itself, so no sweeper job is
// needed.
type redisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository constructs a Redis backed token store.
func NewRedisTokenRepository(client *redis.Client) TokenRepository {
	return &redisTokenRepository{client: client}
}

func (repository *redisTokenRepository) StoreResetToken(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	return repository.store(ctx, constants.RedisPrefixResetToken+token, accountID, ttl)
}

func (repository *redisTokenRepository) ConsumeResetToken(ctx context.Context, token string) (int64, error) {
	return repository.consume(ctx, constants.RedisPrefixResetToken+token, "Reset token is invalid or expired")
}

func (repository *redisTokenRepository) StoreVerifyToken(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	return repository.store(ctx, constants.RedisPrefixVerifyToken+token, accountID, ttl)
}

func (repository *redisTokenRepository) ConsumeVerifyToken(ctx context.Context, token string) (int64, error) {
	return repository.consume(ctx, constants.RedisPrefixVerifyToken+token, "Verification token is invalid or expired")
}

func (repository *redisTokenRepository) store(ctx context.Context, key string, accountID int64, ttl time.Duration) error {
	if err := repository.client.Set(ctx, key, accountID, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to store token: %w", err)
	}
	return nil
}

// consume atomically reads and deletes the key. GetDel keeps the token
// single-use even under concurrent confirmation attempts.
func (repository *redisTokenRepository) consume(ctx context.Context, key, expiredMessage string) (int64, error) {
	value, err := repository.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.Unauthorized(expiredMessage)
		}
		return 0, fmt.Errorf("redis: failed to consume token: %w", err)
	}

	accountID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis: malformed token binding: %w", err)
	}
	return accountID, nil
}
