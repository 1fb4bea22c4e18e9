// Copyright (c) 2026 Inkwell. All rights reserved.

package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CodeeWithRafay/inkwell/internal/platform/apperr"
	"github.com/CodeeWithRafay/inkwell/internal/platform/dberr"
)

// PostgresRepository implements Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL blog repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new post row.
func (repository *PostgresRepository) Create(context context.Context, blog *Blog) error {
	const query = `
		INSERT INTO content.blog (
			id, title, slug, content, photopath, authorid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = now
	}
	blog.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		blog.ID,
		blog.Title,
		blog.Slug,
		blog.Content,
		blog.PhotoPath,
		blog.AuthorID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Blog already exists")
	}

	return nil
}

// List returns one page of posts, newest first, plus the total row count.
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]Blog, int, error) {
	const query = `
		SELECT id, title, slug, content, photopath, authorid, createdat, updatedat,
		       COUNT(*) OVER () AS total
		FROM content.blog
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var (
		posts = []Blog{}
		total int
	)

	for rows.Next() {
		var post Blog
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Slug,
			&post.Content,
			&post.PhotoPath,
			&post.AuthorID,
			&post.CreatedAt,
			&post.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_blog_repo_scan_failed: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_rows_failed: %w", err)
	}

	return posts, total, nil
}

// FindByID returns one post joined with its author's username.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Detail, error) {
	const query = `
		SELECT b.id, b.title, b.slug, b.content, b.photopath, b.authorid,
		       b.createdat, b.updatedat, a.username
		FROM content.blog b
		JOIN users.account a ON a.id = b.authorid
		WHERE b.id = $1`

	detail := &Detail{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Slug,
		&detail.Content,
		&detail.PhotoPath,
		&detail.AuthorID,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.AuthorUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Blog")
		}
		return nil, fmt.Errorf("postgres_blog_repo_find_by_id_failed: %w", err)
	}

	return detail, nil
}

// Exists reports apperr.NotFound when no post carries the given id. It lets
// the comment domain confirm its parent without importing this package's
// full read model.
func (repository *PostgresRepository) Exists(context context.Context, id string) error {
	const query = `SELECT EXISTS (SELECT 1 FROM content.blog WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("postgres_blog_repo_exists_failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("Blog")
	}

	return nil
}

// Update rewrites the editable columns of a post.
func (repository *PostgresRepository) Update(context context.Context, blog *Blog) error {
	const query = `
		UPDATE content.blog
		SET title = $2, slug = $3, content = $4, photopath = $5, updatedat = $6
		WHERE id = $1`

	blog.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		blog.ID,
		blog.Title,
		blog.Slug,
		blog.Content,
		blog.PhotoPath,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_blog_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Blog")
	}

	return nil
}

// Delete removes a post. Comments are removed by the ON DELETE CASCADE on
// content.comment.blogid.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM content.blog WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_blog_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Blog")
	}

	return nil
}
