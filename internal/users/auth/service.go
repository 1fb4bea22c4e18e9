// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/CodeeWithRafay/inkwell/internal/platform/apperr"
	"github.com/CodeeWithRafay/inkwell/internal/platform/sec"
	"github.com/CodeeWithRafay/inkwell/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and checking security tokens.
//
// The concrete implementation is [sec.TokenService]; the interface keeps the
// session flows testable without real signing keys.
type TokenProvider interface {
	// SignAccessToken creates a signed access JWT for the given account.
	SignAccessToken(userID string, timeToLive time.Duration) (string, error)

	// SignRefreshToken creates a signed refresh JWT for the given account.
	SignRefreshToken(userID string, timeToLive time.Duration) (string, error)

	// VerifyRefreshToken checks a refresh token's signature and expiry and
	// returns its claims. This is only the stateless half of refresh
	// validation — the stored record comparison happens in the service.
	VerifyRefreshToken(tokenString string) (*sec.AuthClaims, error)
}

// Service implements the session lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or rotation logic must be reviewed carefully.
type Service struct {
	userRepository         UserRepository
	refreshTokenRepository RefreshTokenRepository
	tokenProvider          TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	refreshTokenRepo RefreshTokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:         userRepo,
		refreshTokenRepository: refreshTokenRepo,
		tokenProvider:          tokenProv,
	}
}

// AuthSession represents a successfully established user session.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// issueSession signs a fresh token pair for the user and upserts the
// refresh-token record, replacing any prior record for the account.
func (service *Service) issueSession(context context.Context, user *User) (*AuthSession, error) {
	accessToken, err := service.tokenProvider.SignAccessToken(user.ID, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_sign_access_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.SignRefreshToken(user.ID, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_sign_refresh_failed: %w", err)
	}

	// Atomic upsert keyed by account id: exactly one live record per account.
	if err := service.refreshTokenRepository.Upsert(context, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_store_refresh_failed: %w", err)
	}

	return &AuthSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Password string
}

/*
Register validates uniqueness, hashes the password, persists a brand new user
account, and opens its first session.

Description: The email check runs before the username check, and both run
before hashing so a doomed registration never pays the bcrypt cost. The
checks and the insert are not one transaction — a concurrent duplicate slips
through to the unique index, which the repository maps to a 409.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: Token pair plus the created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	emailInUse, err := service.userRepository.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_email_check_failed: %w", err)
	}
	if emailInUse {
		return nil, apperr.Conflict("Email Already Registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	usernameInUse, err := service.userRepository.ExistsByUsername(context, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_username_check_failed: %w", err)
	}
	if usernameInUse {
		return nil, apperr.Conflict("Username not available")
	}

	// Prevent storing plain-text passwords. Fixed cost factor 10 balances
	// security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// First-time insert of the refresh record + token pair
	return service.issueSession(context, user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Login validates user credentials and issues a fresh session.

Description: Verifies identity, performs constant-time password comparison,
and rotates the account's refresh record — any session issued earlier for
this account is invalidated by the overwrite.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {

	// Look up the account by username. Only an absent account becomes a 401 —
	// storage failures propagate so the boundary reports them as 500.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("auth_service_find_user_failed: %w", err)
		}
		return nil, apperr.Unauthorized("Invalid Username")
	}

	// Verify password hash using bcrypt's constant-time comparison
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid Password")
	}

	// New token pair + record rotation
	return service.issueSession(context, user)
}

/*
Logout revokes the presented refresh token's server-side record.

Description: Idempotent — an unverifiable token or a missing/mismatched
record means the session is already gone, which is a success. The access
token self-validates until its own expiry; only the refresh lever is cut here.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	// Resolve the owning account from the token itself. If the token cannot
	// be verified its record (whose TTL matches the token's) is unusable
	// anyway — treat as already logged out.
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	// Delete-by-value: only removes the record if it still holds this token.
	if err := service.refreshTokenRepository.DeleteMatching(context, claims.UserID, refreshToken); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Rotation

/*
Refresh implements the refresh-token rotation mechanism.

Description: Verifies the presented refresh token statelessly
(signature + expiry), then statefully (it must equal the account's stored
record), and issues a rotated token pair. The old refresh token becomes
unusable the instant the new record lands — single use per rotation.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *AuthSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*AuthSession, error) {

	// Stateless half: signature and expiry
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Unauthorized")
	}

	// Stateful half: the stored record must hold this exact token. A stale
	// (already rotated) token fails here even though its signature is valid.
	// A missing record is a 401; a store failure is not.
	storedToken, err := service.refreshTokenRepository.FindByUserID(context, claims.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("auth_service_find_refresh_record_failed: %w", err)
		}
		return nil, apperr.Unauthorized("Unauthorized")
	}
	if storedToken != refreshToken {
		return nil, apperr.Unauthorized("Unauthorized")
	}

	// Load the account for the response body. A deleted account means the
	// token no longer identifies anyone — 401; anything else propagates.
	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("auth_service_find_account_failed: %w", err)
		}
		return nil, apperr.Unauthorized("Unauthorized")
	}

	// Rotate: new pair, record overwritten
	return service.issueSession(context, user)
}

// isNotFound reports whether err is the repositories' absent-row signal.
// The session flows downgrade only this kind to a 401; wrapped storage
// failures keep their identity and surface as 500 at the boundary.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Status == http.StatusNotFound
}
