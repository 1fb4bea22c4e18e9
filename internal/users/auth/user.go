// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, the refresh-token record) and the
logic for registration, login, logout, and token rotation.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the Inkwell platform.
//
// Username and Email are globally unique. The password is only ever held as
// a bcrypt hash; the plaintext never touches storage or transport.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserView is the redacted projection of [User] returned to clients.
//
// It is derived on demand and never persisted.
type UserView struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// View derives the transport-safe projection of the user.
func (user *User) View() UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldUser            = "user"
	FieldAuth            = "auth"
)
