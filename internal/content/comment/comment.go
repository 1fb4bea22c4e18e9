// Copyright (c) 2026 Inkwell. All rights reserved.

// Package comment implements reader comments attached to blog posts.
package comment

import (
	"context"
	"time"
)

// Comment represents a single reader comment on a post.
type Comment struct {
	ID        string    `json:"_id"`
	BlogID    string    `json:"blog"`
	AuthorID  string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View is the list projection with the author's username resolved.
type View struct {
	Comment
	AuthorUsername string `json:"authorUsername"`
}

// Repository defines the persistence contract for comments.
type Repository interface {
	// Create persists a new comment.
	Create(context context.Context, comment *Comment) error

	// ListByBlog returns all comments on a post, oldest first, with
	// author usernames resolved.
	ListByBlog(context context.Context, blogID string) ([]View, error)
}

// Validation field identifiers.
const (
	FieldID      = "id"
	FieldBlogID  = "blog"
	FieldContent = "content"

	ContentMaxLen = 500
)
