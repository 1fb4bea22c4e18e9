// Copyright (c) 2026 Inkwell. All rights reserved.

package comment

import (
	"context"

	"github.com/CodeeWithRafay/inkwell/pkg/uuid"
)

// BlogFinder confirms a post exists before a comment is attached to it.
//
// The blog package's repository satisfies this; the narrow interface keeps
// the two content domains from importing each other.
type BlogFinder interface {
	Exists(context context.Context, blogID string) error
}

// Service orchestrates business logic for comments.
type Service struct {
	repository Repository
	blogFinder BlogFinder
}

// NewService constructs a comment [Service].
func NewService(repository Repository, blogFinder BlogFinder) *Service {
	return &Service{repository: repository, blogFinder: blogFinder}
}

// CreateInput holds the data required to post a comment.
type CreateInput struct {
	BlogID   string
	AuthorID string
	Content  string
}

// Create attaches a new comment to an existing post.
func (service *Service) Create(context context.Context, input CreateInput) (*Comment, error) {
	if err := service.blogFinder.Exists(context, input.BlogID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		BlogID:   input.BlogID,
		AuthorID: input.AuthorID,
		Content:  input.Content,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListByBlog returns all comments on a post, oldest first.
func (service *Service) ListByBlog(context context.Context, blogID string) ([]View, error) {
	return service.repository.ListByBlog(context, blogID)
}
