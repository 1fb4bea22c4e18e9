// Copyright (c) 2026 Inkwell. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeeWithRafay/inkwell/internal/platform/apperr"
	"github.com/CodeeWithRafay/inkwell/internal/platform/sec"
	"github.com/CodeeWithRafay/inkwell/internal/users/auth"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	byID       map[string]*auth.User
	byUsername map[string]*auth.User
	byEmail    map[string]*auth.User

	// failWith, when set, is returned by every lookup — it simulates a
	// storage outage.
	failWith error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:       map[string]*auth.User{},
		byUsername: map[string]*auth.User{},
		byEmail:    map[string]*auth.User{},
	}
}

func (f *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	user, ok := f.byUsername[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.byID[user.ID] = user
	f.byUsername[user.Username] = user
	f.byEmail[user.Email] = user
	return nil
}

type fakeRefreshTokenRepository struct {
	records map[string]string

	failWith error
}

func newFakeRefreshTokenRepository() *fakeRefreshTokenRepository {
	return &fakeRefreshTokenRepository{records: map[string]string{}}
}

func (f *fakeRefreshTokenRepository) Upsert(_ context.Context, userID, token string) error {
	f.records[userID] = token
	return nil
}

func (f *fakeRefreshTokenRepository) FindByUserID(_ context.Context, userID string) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	token, ok := f.records[userID]
	if !ok {
		return "", apperr.NotFound("Refresh token record")
	}
	return token, nil
}

func (f *fakeRefreshTokenRepository) DeleteMatching(_ context.Context, userID, token string) error {
	if stored, ok := f.records[userID]; ok && stored == token {
		delete(f.records, userID)
	}
	return nil
}

// # Test Harness

type serviceFixture struct {
	service     *auth.Service
	users       *fakeUserRepository
	refreshRepo *fakeRefreshTokenRepository
	tokens      *sec.TokenService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	tokenService, err := sec.NewTokenService("test-access-secret", "test-refresh-secret", "inkwell-test")
	require.NoError(t, err)

	users := newFakeUserRepository()
	refreshRepo := newFakeRefreshTokenRepository()

	return &serviceFixture{
		service:     auth.NewService(users, refreshRepo, tokenService),
		users:       users,
		refreshRepo: refreshRepo,
		tokens:      tokenService,
	}
}

func registerTestUser(t *testing.T, fixture *serviceFixture) *auth.AuthSession {
	t.Helper()

	session, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "rafay123",
		Name:     "Rafay",
		Email:    "rafay@inkwell.dev",
		Password: "Abcdef12",
	})
	require.NoError(t, err)
	return session
}

// # Registration

/*
TestService_Register_Success checks the happy path: the account is persisted
with a hashed password and a full session is issued.
*/
func TestService_Register_Success(t *testing.T) {
	fixture := newServiceFixture(t)

	session := registerTestUser(t, fixture)

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.NotEqual(t, session.AccessToken, session.RefreshToken)

	require.NotNil(t, session.User)
	assert.Equal(t, "rafay123", session.User.Username)
	assert.NotEqual(t, "Abcdef12", session.User.PasswordHash)

	// The refresh record must hold the issued token.
	stored, err := fixture.refreshRepo.FindByUserID(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.RefreshToken, stored)
}

/*
TestService_Register_TokenLifetimes decodes the issued pair and asserts the
wired TTLs: the access token expires ~30 minutes out, the refresh token ~60.
*/
func TestService_Register_TokenLifetimes(t *testing.T) {
	fixture := newServiceFixture(t)

	before := time.Now()
	session := registerTestUser(t, fixture)

	accessClaims, err := fixture.tokens.VerifyAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, accessClaims.UserID)
	assert.WithinDuration(t, before.Add(auth.AccessTokenTTL), accessClaims.ExpiresAt.Time, 5*time.Second)

	refreshClaims, err := fixture.tokens.VerifyRefreshToken(session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, refreshClaims.UserID)
	assert.WithinDuration(t, before.Add(auth.RefreshTokenTTL), refreshClaims.ExpiresAt.Time, 5*time.Second)
}

/*
TestService_Register_DuplicateEmail expects the exact conflict message for a
taken email.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	fixture := newServiceFixture(t)
	registerTestUser(t, fixture)

	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "someoneelse",
		Name:     "Someone",
		Email:    "rafay@inkwell.dev",
		Password: "Abcdef12",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.Status)
	assert.Equal(t, "Email Already Registered", ae.Message)
}

/*
TestService_Register_DuplicateUsername expects the exact conflict message for
a taken username.
*/
func TestService_Register_DuplicateUsername(t *testing.T) {
	fixture := newServiceFixture(t)
	registerTestUser(t, fixture)

	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "rafay123",
		Name:     "Someone",
		Email:    "other@inkwell.dev",
		Password: "Abcdef12",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.Status)
	assert.Equal(t, "Username not available", ae.Message)
}

// # Login

/*
TestService_Login_Success verifies credentials and session rotation: the new
refresh token replaces the one issued at registration.
*/
func TestService_Login_Success(t *testing.T) {
	fixture := newServiceFixture(t)
	registered := registerTestUser(t, fixture)

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Username: "rafay123",
		Password: "Abcdef12",
	})
	require.NoError(t, err)

	stored, err := fixture.refreshRepo.FindByUserID(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.RefreshToken, stored)
	assert.NotEqual(t, registered.RefreshToken, stored)
}

/*
TestService_Login_UnknownUsername expects the exact 401 message.
*/
func TestService_Login_UnknownUsername(t *testing.T) {
	fixture := newServiceFixture(t)

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Username: "ghost",
		Password: "Abcdef12",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.Status)
	assert.Equal(t, "Invalid Username", ae.Message)
}

/*
TestService_Login_WrongPassword expects the exact 401 message.
*/
func TestService_Login_WrongPassword(t *testing.T) {
	fixture := newServiceFixture(t)
	registerTestUser(t, fixture)

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Username: "rafay123",
		Password: "Wrongpass1",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.Status)
	assert.Equal(t, "Invalid Password", ae.Message)
}

/*
TestService_Login_StorageFailure verifies a lookup outage is NOT reported as
bad credentials: the error must propagate untranslated so the boundary logs
it and answers 500.
*/
func TestService_Login_StorageFailure(t *testing.T) {
	fixture := newServiceFixture(t)
	registerTestUser(t, fixture)

	outage := errors.New("connection refused")
	fixture.users.failWith = outage

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Username: "rafay123",
		Password: "Abcdef12",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, outage))
	assert.Nil(t, apperr.As(err))
}

// # Refresh Rotation

/*
TestService_Refresh_RotatesTokenPair checks that a valid refresh yields a new
pair and overwrites the stored record, making the presented token single-use.
*/
func TestService_Refresh_RotatesTokenPair(t *testing.T) {
	fixture := newServiceFixture(t)
	registered := registerTestUser(t, fixture)

	rotated, err := fixture.service.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, registered.RefreshToken, rotated.RefreshToken)

	stored, err := fixture.refreshRepo.FindByUserID(context.Background(), rotated.User.ID)
	require.NoError(t, err)
	assert.Equal(t, rotated.RefreshToken, stored)
}

/*
TestService_Refresh_StaleTokenRejected presents the pre-rotation token after
a rotation: the signature is still valid but the record no longer matches,
so it must fail with a plain Unauthorized.
*/
func TestService_Refresh_StaleTokenRejected(t *testing.T) {
	fixture := newServiceFixture(t)
	registered := registerTestUser(t, fixture)

	_, err := fixture.service.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)

	_, err = fixture.service.Refresh(context.Background(), registered.RefreshToken)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.Status)
	assert.Equal(t, "Unauthorized", ae.Message)
}

/*
TestService_Refresh_GarbageToken rejects an unverifiable token with 401.
*/
func TestService_Refresh_GarbageToken(t *testing.T) {
	fixture := newServiceFixture(t)

	_, err := fixture.service.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.Status)
}

/*
TestService_Refresh_StorageFailure verifies a record-store outage during
refresh propagates instead of masquerading as 401 Unauthorized.
*/
func TestService_Refresh_StorageFailure(t *testing.T) {
	fixture := newServiceFixture(t)
	registered := registerTestUser(t, fixture)

	outage := errors.New("connection refused")
	fixture.refreshRepo.failWith = outage

	_, err := fixture.service.Refresh(context.Background(), registered.RefreshToken)

	require.Error(t, err)
	assert.True(t, errors.Is(err, outage))
	assert.Nil(t, apperr.As(err))
}

/*
TestService_Refresh_AccountLookupFailure verifies an account-store outage
after the record check also propagates untranslated.
*/
func TestService_Refresh_AccountLookupFailure(t *testing.T) {
	fixture := newServiceFixture(t)
	registered := registerTestUser(t, fixture)

	outage := errors.New("connection refused")
	fixture.users.failWith = outage

	_, err := fixture.service.Refresh(context.Background(), registered.RefreshToken)

	require.Error(t, err)
	assert.True(t, errors.Is(err, outage))
	assert.Nil(t, apperr.As(err))
}

// # Logout

/*
TestService_Logout_RemovesRecord logs out and then proves the refresh token
no longer rotates.
*/
func TestService_Logout_RemovesRecord(t *testing.T) {
	fixture := newServiceFixture(t)
	registered := registerTestUser(t, fixture)

	require.NoError(t, fixture.service.Logout(context.Background(), registered.RefreshToken))

	_, err := fixture.service.Refresh(context.Background(), registered.RefreshToken)
	assert.Error(t, err)
}

/*
TestService_Logout_Idempotent verifies repeated and garbage logouts succeed.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	fixture := newServiceFixture(t)
	registered := registerTestUser(t, fixture)

	assert.NoError(t, fixture.service.Logout(context.Background(), registered.RefreshToken))
	assert.NoError(t, fixture.service.Logout(context.Background(), registered.RefreshToken))
	assert.NoError(t, fixture.service.Logout(context.Background(), "not-a-token"))
}
