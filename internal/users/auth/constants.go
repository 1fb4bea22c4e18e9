// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Short (30m) to minimize the impact of a leaked token: after logout a
	// stolen access token stays usable for at most this long.
	AccessTokenTTL = 30 * time.Minute

	// RefreshTokenTTL is the duration a refresh token remains valid.
	// Each successful refresh rotates the token, restarting the window.
	RefreshTokenTTL = 60 * time.Minute

	// UsernameMinLen and UsernameMaxLen bound the account username.
	UsernameMinLen = 5
	UsernameMaxLen = 30

	// NameMaxLen bounds the display name.
	NameMaxLen = 30
)
