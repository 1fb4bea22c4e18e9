// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, cookie settings, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Security: Cookie names and lifetimes for the auth token pair.
  - Redis: Key prefixes for the volatile refresh-token records.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "inkwell-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Authentication Cookies

const (
	// AccessTokenCookieName is the cookie that carries the short-lived JWT.
	AccessTokenCookieName = "accessToken"

	// RefreshTokenCookieName is the cookie that carries the rotating refresh JWT.
	RefreshTokenCookieName = "refreshToken"

	// AuthCookieMaxAge is the browser-side lifetime of both auth cookies.
	//
	// Deliberately longer than either token's cryptographic TTL: an expired
	// token inside a live cookie fails verification, so token expiry stays
	// authoritative. Treat this as a tunable, not a grace window.
	AuthCookieMaxAge = 24 * time.Hour

	// AuthCookiePath scopes both auth cookies to the whole API.
	AuthCookiePath = "/"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldDetails = "details"
	FieldUser    = "user"
	FieldAuth    = "auth"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers   = "users"
	SchemaContent = "content"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRefreshToken = "auth:refresh_token:"
)
