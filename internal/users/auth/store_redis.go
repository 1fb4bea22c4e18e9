// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/CodeeWithRafay/inkwell/internal/platform/apperr"
	"github.com/CodeeWithRafay/inkwell/internal/platform/constants"
)

// RedisRefreshTokenRepository implements RefreshTokenRepository using Redis.
//
// # Layout
//
// One key per account: "auth:refresh_token:<userID>" holding the signed token
// string, with TTL equal to the token's own lifetime. SET gives the atomic
// upsert the rotation invariant requires, and the TTL expires dead records
// on its own.
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

// NewRefreshTokenRepository creates a new Redis-backed RefreshTokenRepository.
func NewRefreshTokenRepository(client *redis.Client) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{client: client}
}

/*
Upsert stores the refresh token for an account, replacing any prior record.

Description: First-time insert and rotation are the same operation — a plain
SET with TTL. The previous token (if any) becomes unusable the moment this
write lands.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: Execution errors
*/
func (repository *RedisRefreshTokenRepository) Upsert(context context.Context, userID, token string) error {

	// Key the record by account id: at most one live record per account
	key := constants.RedisPrefixRefreshToken + userID

	// SET with TTL — atomic replace of whatever was there before
	if err := repository.client.Set(context, key, token, RefreshTokenTTL).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_upsert_failed: %w", err)
	}

	return nil
}

/*
FindByUserID retrieves the stored refresh token for an account.

Description: Returns apperr.NotFound if the record is absent or its TTL
has lapsed.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: The stored signed token
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisRefreshTokenRepository) FindByUserID(context context.Context, userID string) (string, error) {

	key := constants.RedisPrefixRefreshToken + userID

	token, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Refresh token record")
		}
		return "", fmt.Errorf("redis_refresh_token_get_failed: %w", err)
	}

	return token, nil
}

/*
DeleteMatching removes the account's record only if it still holds the
presented token.

Description: Delete-by-value on a keyed record. A non-matching value means a
newer token has already rotated in — deleting it would log out a fresher
session, so the record is left alone. The read-compare-delete is not atomic;
the worst case is the same narrow race the rotation flow already accepts.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisRefreshTokenRepository) DeleteMatching(context context.Context, userID, token string) error {

	key := constants.RedisPrefixRefreshToken + userID

	stored, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Already gone — logout is idempotent
			return nil
		}
		return fmt.Errorf("redis_refresh_token_delete_get_failed: %w", err)
	}

	if stored != token {
		return nil
	}

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_delete_failed: %w", err)
	}

	return nil
}
