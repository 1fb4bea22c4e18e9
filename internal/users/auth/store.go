// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		ExistsByEmail reports whether an account with the given email exists.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: true if a matching account exists
		  - error: Database retrieval failures
	*/
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		ExistsByUsername reports whether an account with the given username exists.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - bool: true if a matching account exists
		  - error: Database retrieval failures
	*/
	ExistsByUsername(context context.Context, username string) (bool, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on a lost uniqueness race, or persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Refresh-Token Record Access

// RefreshTokenRepository defines the contract for the single live
// refresh-token record per account.
//
// # Invariant
//
// At most one record exists per account at all times: Upsert replaces any
// prior record, which is what invalidates a previously issued refresh token
// the moment a new one is stored.
type RefreshTokenRepository interface {

	/*
		Upsert stores the refresh token for an account, overwriting any
		previous record. The write must be atomic at the store level —
		per-account consistency relies on it.

		Parameters:
		  - context: context.Context
		  - userID: string (record key)
		  - token: string (signed refresh token)

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, userID, token string) error

	/*
		FindByUserID returns the stored refresh token for an account.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - string: The stored signed token
		  - error: apperr.NotFound if no live record exists, or retrieval failures
	*/
	FindByUserID(context context.Context, userID string) (string, error)

	/*
		DeleteMatching removes the account's record only if it still holds the
		presented token. A missing or non-matching record is not an error —
		the caller treats it as already logged out.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteMatching(context context.Context, userID, token string) error
}
