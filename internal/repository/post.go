package repository

import (
	"context"

	"playto/internal/models"

	"gorm.io/gorm"
)

// FeedLimit is the hard cap on posts returned by a single feed query.
const FeedLimit = 200

// ListPostsOptions narrows and orders a feed query.
type ListPostsOptions struct {
	// Search filters by post content or author username (substring match).
	Search string
	// Ordering is one of "created_at", "-created_at", "likes_count",
	// "-likes_count". Anything else falls back to newest first.
	Ordering string
	// CurrentUserID enables per-viewer hasLiked computation; zero means
	// an anonymous viewer.
	CurrentUserID uint
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, opts ListPostsOptions) ([]*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// applyPostDetails adds subqueries to fetch the comment count and the
// viewer's liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comment_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'POST' AND likes.target_id = posts.id AND likes.user_id = ?) as has_liked",
			currentUserID)
	}

	return db.Select(selectQuery)
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}

	posts := []*models.Post{&post}
	if err := r.enrich(ctx, posts, currentUserID); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, opts ListPostsOptions) ([]*models.Post, error) {
	var posts []*models.Post

	q := r.applyPostDetails(r.db.WithContext(ctx), opts.CurrentUserID).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User")

	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		q = q.Joins("JOIN users ON users.id = posts.user_id").
			Where("posts.content LIKE ? OR users.username LIKE ?", like, like)
	}

	switch opts.Ordering {
	case "created_at":
		q = q.Order("posts.created_at ASC")
	case "likes_count":
		q = q.Order("posts.likes_count ASC, posts.created_at DESC")
	case "-likes_count":
		q = q.Order("posts.likes_count DESC, posts.created_at DESC")
	default: // "-created_at" and anything unrecognized
		q = q.Order("posts.created_at DESC")
	}

	if err := q.Limit(FeedLimit).Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := r.enrich(ctx, posts, opts.CurrentUserID); err != nil {
		return nil, err
	}
	return posts, nil
}

// enrich fills the non-persisted author projections and, for a known
// viewer, the per-comment liked flags.
func (r *postRepository) enrich(ctx context.Context, posts []*models.Post, currentUserID uint) error {
	if len(posts) == 0 {
		return nil
	}

	var commentIDs []uint
	for _, p := range posts {
		p.Author = p.User.Public()
		if p.Comments == nil {
			p.Comments = []*models.Comment{}
		}
		for _, c := range p.Comments {
			c.Author = c.User.Public()
			commentIDs = append(commentIDs, c.ID)
		}
	}

	if currentUserID == 0 || len(commentIDs) == 0 {
		return nil
	}

	var likedIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id IN ?",
			currentUserID, models.LikeTargetComment, commentIDs).
		Pluck("target_id", &likedIDs).Error
	if err != nil {
		return err
	}

	liked := make(map[uint]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	for _, p := range posts {
		for _, c := range p.Comments {
			_, c.HasLiked = liked[c.ID]
		}
	}
	return nil
}
