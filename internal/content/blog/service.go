// Copyright (c) 2026 Inkwell. All rights reserved.

package blog

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeeWithRafay/inkwell/internal/platform/apperr"
	"github.com/CodeeWithRafay/inkwell/pkg/slug"
	"github.com/CodeeWithRafay/inkwell/pkg/uuid"
)

// Service orchestrates business logic for blog posts.
type Service struct {
	repository Repository

	// storagePath is the local directory for uploaded photos; publicBase is
	// the URL prefix clients use to fetch them back.
	storagePath string
	publicBase  string
}

// NewService constructs a blog [Service].
func NewService(repository Repository, storagePath, publicBase string) *Service {
	return &Service{
		repository:  repository,
		storagePath: storagePath,
		publicBase:  strings.TrimRight(publicBase, "/"),
	}
}

// CreateInput holds the data required to publish a new post.
type CreateInput struct {
	Title    string
	Content  string
	Photo    string // optional base64 payload, with or without a data: prefix
	AuthorID string
}

// Create publishes a new post for the author, storing the photo (if any)
// on local disk and deriving a URL slug from the title.
func (service *Service) Create(context context.Context, input CreateInput) (*Blog, error) {
	photoPath, err := service.savePhoto(input.Photo)
	if err != nil {
		return nil, err
	}

	post := &Blog{
		ID:        uuid.New(),
		Title:     input.Title,
		Slug:      slug.From(input.Title),
		Content:   input.Content,
		PhotoPath: photoPath,
		AuthorID:  input.AuthorID,
	}

	if err := service.repository.Create(context, post); err != nil {
		return nil, err
	}

	return post, nil
}

// List returns one page of posts plus the total count.
func (service *Service) List(context context.Context, limit, offset int) ([]Blog, int, error) {
	return service.repository.List(context, limit, offset)
}

// Get returns a single post with its author resolved.
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	return service.repository.FindByID(context, id)
}

// UpdateInput holds the editable fields of a post.
type UpdateInput struct {
	ID          string
	Title       string
	Content     string
	Photo       string // optional replacement photo (base64)
	RequesterID string
}

// Update edits a post. Only the author may edit; a replacement photo
// supersedes the stored one.
func (service *Service) Update(context context.Context, input UpdateInput) (*Blog, error) {
	existing, err := service.repository.FindByID(context, input.ID)
	if err != nil {
		return nil, err
	}

	if existing.AuthorID != input.RequesterID {
		return nil, apperr.Forbidden("Only the author can edit this blog")
	}

	post := &Blog{
		ID:        existing.ID,
		Title:     input.Title,
		Slug:      slug.From(input.Title),
		Content:   input.Content,
		PhotoPath: existing.PhotoPath,
		AuthorID:  existing.AuthorID,
		CreatedAt: existing.CreatedAt,
	}

	if input.Photo != "" {
		photoPath, err := service.savePhoto(input.Photo)
		if err != nil {
			return nil, err
		}
		post.PhotoPath = photoPath
	}

	if err := service.repository.Update(context, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes a post. Only the author may delete.
func (service *Service) Delete(context context.Context, id, requesterID string) error {
	existing, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if existing.AuthorID != requesterID {
		return apperr.Forbidden("Only the author can delete this blog")
	}

	return service.repository.Delete(context, id)
}

// savePhoto decodes a base64 photo payload and writes it under the storage
// directory, returning the public path. An empty payload is not an error.
//
// Local disk (served statically under /storage) is the storage tier here;
// there is deliberately no object-store indirection.
func (service *Service) savePhoto(photo string) (string, error) {
	if photo == "" {
		return "", nil
	}

	// Accept both raw base64 and data-URL payloads ("data:image/png;base64,...").
	if idx := strings.Index(photo, ","); idx != -1 && strings.HasPrefix(photo, "data:") {
		photo = photo[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(photo)
	if err != nil {
		return "", apperr.ValidationError("Photo must be valid base64", apperr.FieldError{
			Field:   FieldPhoto,
			Message: "Invalid base64 payload",
		})
	}

	filename := uuid.New() + ".png"
	fullPath := filepath.Join(service.storagePath, filename)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("blog_service_photo_write_failed: %w", err)
	}

	return service.publicBase + "/storage/" + filename, nil
}
