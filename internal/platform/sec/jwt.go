// Copyright (c) 2026 Inkwell. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth package's TokenProvider interface.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside both token kinds.
//
// # Why custom claims?
//
// By embedding the UserID directly inside the JWT, the access-token
// middleware can reconstruct the active user context WITHOUT querying the
// database on every single API request. The refresh token carries the same
// shape so rotation can resolve the owning account before touching storage.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID is abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
}

// TokenService handles generation and verification of the two JWT kinds
// using HS256 with independent secrets.
//
// # Revocation Lever
//
// Access tokens self-validate until their own expiry; refresh tokens are
// additionally checked against the stored per-account record. Rotating or
// deleting that record therefore invalidates future refreshes immediately,
// while a stolen access token stays usable for at most its remaining TTL.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

// NewTokenService creates a new TokenService from the two configured secrets.
//
// The secrets must be non-empty and distinct: sharing one secret would let a
// refresh token be presented where an access token is expected.
func NewTokenService(accessSecret, refreshSecret, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("sec: token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("sec: access and refresh secrets must differ")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
	}, nil
}

// SignAccessToken creates a new short-lived access token for a user.
func (service *TokenService) SignAccessToken(userID string, timeToLive time.Duration) (string, error) {
	return service.sign(service.accessSecret, userID, timeToLive)
}

// SignRefreshToken creates a new refresh token for a user.
func (service *TokenService) SignRefreshToken(userID string, timeToLive time.Duration) (string, error) {
	return service.sign(service.refreshSecret, userID, timeToLive)
}

// VerifyAccessToken checks the signature and expiry of an access token.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	return service.verify(service.accessSecret, tokenString)
}

// VerifyRefreshToken checks the signature and expiry of a refresh token.
//
// Note: this is the stateless half of refresh validation. The caller must
// still compare the token against the stored per-account record.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*AuthClaims, error) {
	return service.verify(service.refreshSecret, tokenString)
}

// sign produces a signed HS256 token embedding the userID and an expiry.
func (service *TokenService) sign(secret []byte, userID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// verify parses a token string against the given secret.
func (service *TokenService) verify(secret []byte, tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
