// Copyright (c) 2026 Inkwell. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeeWithRafay/inkwell/internal/platform/apperr"
	"github.com/CodeeWithRafay/inkwell/internal/platform/constants"
	"github.com/CodeeWithRafay/inkwell/internal/users/auth"
)

// newTestRedisRepo spins up an in-memory Redis and returns a repository
// bound to it.
func newTestRedisRepo(t *testing.T) (*auth.RedisRefreshTokenRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewRefreshTokenRepository(client), server
}

/*
TestRefreshTokenRepository_UpsertAndFind stores a token and reads it back,
checking the key carries the configured TTL.
*/
func TestRefreshTokenRepository_UpsertAndFind(t *testing.T) {
	repo, server := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "token-a"))

	stored, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "token-a", stored)

	// The record must expire on its own.
	ttl := server.TTL(constants.RedisPrefixRefreshToken + "user-1")
	assert.Equal(t, auth.RefreshTokenTTL, ttl)
}

/*
TestRefreshTokenRepository_UpsertOverwrites proves the single-record
invariant: a second upsert for the same account replaces the first.
*/
func TestRefreshTokenRepository_UpsertOverwrites(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "token-a"))
	require.NoError(t, repo.Upsert(ctx, "user-1", "token-b"))

	stored, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "token-b", stored)
}

/*
TestRefreshTokenRepository_FindMissing returns NotFound for an account with
no record.
*/
func TestRefreshTokenRepository_FindMissing(t *testing.T) {
	repo, _ := newTestRedisRepo(t)

	_, err := repo.FindByUserID(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, apperr.IsAppError(err))
}

/*
TestRefreshTokenRepository_Expiry verifies the record dies with its TTL.
*/
func TestRefreshTokenRepository_Expiry(t *testing.T) {
	repo, server := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "token-a"))

	server.FastForward(auth.RefreshTokenTTL + time.Second)

	_, err := repo.FindByUserID(ctx, "user-1")
	assert.Error(t, err)
}

/*
TestRefreshTokenRepository_DeleteMatching covers the delete-by-value rules:
a matching token removes the record, a mismatched token leaves it alone,
and a missing record is not an error.
*/
func TestRefreshTokenRepository_DeleteMatching(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	ctx := context.Background()

	// Missing record: idempotent success.
	assert.NoError(t, repo.DeleteMatching(ctx, "user-1", "token-a"))

	// Mismatched value: the newer record survives.
	require.NoError(t, repo.Upsert(ctx, "user-1", "token-b"))
	assert.NoError(t, repo.DeleteMatching(ctx, "user-1", "token-a"))

	stored, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "token-b", stored)

	// Matching value: record removed.
	assert.NoError(t, repo.DeleteMatching(ctx, "user-1", "token-b"))

	_, err = repo.FindByUserID(ctx, "user-1")
	assert.Error(t, err)
}
