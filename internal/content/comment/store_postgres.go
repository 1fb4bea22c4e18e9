// Copyright (c) 2026 Inkwell. All rights reserved.

package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CodeeWithRafay/inkwell/internal/platform/dberr"
)

// PostgresRepository implements Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL comment repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new comment row. A dangling blog id trips the foreign key
// and surfaces through dberr.
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO content.comment (
			id, blogid, authorid, content, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.BlogID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Comment already exists")
	}

	return nil
}

// ListByBlog returns all comments on a post, oldest first, with author
// usernames joined in.
func (repository *PostgresRepository) ListByBlog(context context.Context, blogID string) ([]View, error) {
	const query = `
		SELECT c.id, c.blogid, c.authorid, c.content, c.createdat, c.updatedat,
		       a.username
		FROM content.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.blogid = $1
		ORDER BY c.createdat ASC`

	rows, err := repository.pool.Query(context, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := []View{}
	for rows.Next() {
		var view View
		if err := rows.Scan(
			&view.ID,
			&view.BlogID,
			&view.AuthorID,
			&view.Content,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.AuthorUsername,
		); err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_rows_failed: %w", err)
	}

	return comments, nil
}
