// Copyright (c) 2026 Inkwell. All rights reserved.

// Package blog implements the publishing domain: post entities, authoring
// rules, and photo handling.
package blog

import (
	"context"
	"time"
)

// Blog represents a published post.
type Blog struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	PhotoPath string    `json:"photoPath,omitempty"`
	AuthorID  string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Detail is the single-post projection with the author resolved.
type Detail struct {
	Blog
	AuthorUsername string `json:"authorUsername"`
}

// Repository defines the persistence contract for blog posts.
type Repository interface {
	// Create persists a new post.
	Create(context context.Context, blog *Blog) error

	// List returns one page of posts (newest first) plus the total count.
	List(context context.Context, limit, offset int) ([]Blog, int, error)

	// FindByID returns a single post with its author username resolved.
	FindByID(context context.Context, id string) (*Detail, error)

	// Update persists title, content, slug, and photo changes.
	Update(context context.Context, blog *Blog) error

	// Delete removes the post and its comments.
	Delete(context context.Context, id string) error
}

// Validation field identifiers.
const (
	FieldID      = "id"
	FieldTitle   = "title"
	FieldContent = "content"
	FieldPhoto   = "photo"

	TitleMaxLen = 50
)
