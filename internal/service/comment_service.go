package service

import (
	"context"
	"errors"

	"playto/internal/models"
	"playto/internal/repository"

	"gorm.io/gorm"
)

// CommentService owns threaded comment reads and writes.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput carries the fields for a new comment.
type CreateCommentInput struct {
	UserID   uint
	PostID   uint
	ParentID *uint
	Content  string
}

// UpdateCommentInput carries an edit to an existing comment. A non-nil
// ParentID is validated but never applied as a change: parents are fixed
// at creation.
type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
	ParentID  *uint
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validateContent(in.Content, "Comment", models.MaxCommentContentLen); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", *in.ParentID)
		}
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment must belong to the same post")
		}
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		UserID:   in.UserID,
		ParentID: in.ParentID,
		Content:  in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Comment", id)
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}

	// Parents are immutable after creation; that immutability is what
	// makes the single-hop self-parent check below sufficient against
	// longer reply cycles.
	if in.ParentID != nil {
		if *in.ParentID == comment.ID {
			return nil, models.NewValidationError("A comment cannot reply to itself")
		}
		if comment.ParentID == nil || *in.ParentID != *comment.ParentID {
			return nil, models.NewValidationError("Comment parent cannot be changed")
		}
	}

	if err := validateContent(in.Content, "Comment", models.MaxCommentContentLen); err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}
