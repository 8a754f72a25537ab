package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"playto/internal/models"
	"playto/internal/repository"

	"gorm.io/gorm"
)

// PostService owns feed post reads and writes.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	UserID  uint
	Content string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// validateContent checks the shared content rules: non-empty after
// trimming, and at most limit characters.
func validateContent(content, what string, limit int) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content cannot be empty")
	}
	if utf8.RuneCountInString(content) > limit {
		return models.NewValidationError(fmt.Sprintf("%s cannot exceed %d characters", what, limit))
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validateContent(in.Content, "Post", models.MaxPostContentLen); err != nil {
		return nil, err
	}

	post := &models.Post{
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.GetPost(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, opts repository.ListPostsOptions) ([]*models.Post, error) {
	return s.postRepo.List(ctx, opts)
}
