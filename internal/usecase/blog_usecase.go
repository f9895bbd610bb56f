package usecase

import (
	"context"
	"fmt"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
)

// CreateBlogRequest represents the request to publish a blog post
type CreateBlogRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Content  string `json:"content" validate:"required,min=10"`
	ImageURL string `json:"image_url,omitempty"`
}

// UpdateBlogRequest represents a partial blog edit
type UpdateBlogRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// BlogUseCase handles blog content business logic
type BlogUseCase struct {
	blogRepo ports.BlogRepository
}

// NewBlogUseCase creates a new blog use case
func NewBlogUseCase(blogRepo ports.BlogRepository) *BlogUseCase {
	return &BlogUseCase{blogRepo: blogRepo}
}

// AddBlog publishes a new blog post
func (uc *BlogUseCase) AddBlog(ctx context.Context, req CreateBlogRequest, authorID string) (*domain.Blog, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(req.Title) < 3 || len(req.Title) > 200 {
		return nil, fmt.Errorf("title must be between 3 and 200 characters")
	}
	if len(req.Content) < 10 {
		return nil, fmt.Errorf("content must be at least 10 characters")
	}

	blog := domain.NewBlog(req.Title, req.Content, authorID)
	blog.ImageURL = req.ImageURL

	if err := uc.blogRepo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	return blog, nil
}

// GetBlog retrieves a blog post by ID
func (uc *BlogUseCase) GetBlog(ctx context.Context, blogID string) (*domain.Blog, error) {
	if blogID == "" {
		return nil, fmt.Errorf("blog ID is required")
	}

	blog, err := uc.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	return blog, nil
}

// ListBlogs retrieves blog posts, newest first
func (uc *BlogUseCase) ListBlogs(ctx context.Context, limit, offset int) ([]*domain.Blog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	blogs, err := uc.blogRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	return blogs, nil
}

// UpdateBlog edits an existing blog post
func (uc *BlogUseCase) UpdateBlog(ctx context.Context, blogID string, req UpdateBlogRequest) (*domain.Blog, error) {
	if blogID == "" {
		return nil, fmt.Errorf("blog ID is required")
	}

	blog, err := uc.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	if req.Title != nil && *req.Title != "" {
		blog.Title = *req.Title
	}
	if req.Content != nil && *req.Content != "" {
		blog.Content = *req.Content
	}
	if req.ImageURL != nil {
		blog.ImageURL = *req.ImageURL
	}

	if err := uc.blogRepo.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}

	return blog, nil
}

// DeleteBlog removes a blog post
func (uc *BlogUseCase) DeleteBlog(ctx context.Context, blogID string) error {
	if blogID == "" {
		return fmt.Errorf("blog ID is required")
	}

	if err := uc.blogRepo.Delete(ctx, blogID); err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	return nil
}
