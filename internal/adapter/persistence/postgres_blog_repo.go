package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
)

// PostgresBlogRepository implements BlogRepository using PostgreSQL
type PostgresBlogRepository struct {
	db *sql.DB
}

// NewPostgresBlogRepository creates a new PostgreSQL blog repository
func NewPostgresBlogRepository(db *sql.DB) ports.BlogRepository {
	return &PostgresBlogRepository{db: db}
}

// Create saves a new blog post
func (r *PostgresBlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	query := `
		INSERT INTO blogs (id, title, content, image_url, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		blog.ID,
		blog.Title,
		blog.Content,
		nullString(blog.ImageURL),
		blog.AuthorID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

// FindByID retrieves a blog post by its ID
func (r *PostgresBlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	query := `
		SELECT id, title, content, image_url, author_id, created_at, updated_at
		FROM blogs WHERE id = $1
	`

	blog, err := scanBlog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}

	return blog, nil
}

// Update updates an existing blog post
func (r *PostgresBlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, content = $3, image_url = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		blog.ID,
		blog.Title,
		blog.Content,
		nullString(blog.ImageURL),
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrBlogNotFound
	}

	return nil
}

// List retrieves blog posts, newest first
func (r *PostgresBlogRepository) List(ctx context.Context, limit, offset int) ([]*domain.Blog, error) {
	query := `
		SELECT id, title, content, image_url, author_id, created_at, updated_at
		FROM blogs ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blogs: %w", err)
	}

	return blogs, nil
}

// Delete removes a blog post
func (r *PostgresBlogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrBlogNotFound
	}

	return nil
}

func scanBlog(row rowScanner) (*domain.Blog, error) {
	var blog domain.Blog
	var imageURL sql.NullString

	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&imageURL,
		&blog.AuthorID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	blog.ImageURL = imageURL.String

	return &blog, nil
}
