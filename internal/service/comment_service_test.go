package service

import (
	"context"
	"strings"
	"testing"

	"playto/internal/models"
	"playto/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(repository.NewCommentRepository(db), repository.NewPostRepository(db))
}

func TestCommentService_CreateComment(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	post := createTestPost(t, db, author)

	svc := newCommentService(db)
	ctx := context.Background()

	comment, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID:  commenter.ID,
		PostID:  post.ID,
		Content: "first",
	})
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Nil(t, comment.ParentID)
	assert.Equal(t, commenter.Username, comment.Author.Username)

	reply, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID:   author.ID,
		PostID:   post.ID,
		ParentID: &comment.ID,
		Content:  "welcome",
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, comment.ID, *reply.ParentID)
}

func TestCommentService_CreateComment_Errors(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author")
	postA := createTestPost(t, db, author)
	postB := createTestPost(t, db, author)
	onA := createTestComment(t, db, author, postA)

	svc := newCommentService(db)
	ctx := context.Background()

	var appErr *models.AppError

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 999, Content: "x"})
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("missing parent", func(t *testing.T) {
		missing := uint(999)
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: 1, PostID: postA.ID, ParentID: &missing, Content: "x",
		})
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("parent on another post", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: 1, PostID: postB.ID, ParentID: &onA.ID, Content: "x",
		})
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("content too long", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  1,
			PostID:  postA.ID,
			Content: strings.Repeat("a", models.MaxCommentContentLen+1),
		})
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("content exactly at limit", func(t *testing.T) {
		c, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  author.ID,
			PostID:  postA.ID,
			Content: strings.Repeat("a", models.MaxCommentContentLen),
		})
		require.NoError(t, err)
		assert.Len(t, c.Content, models.MaxCommentContentLen)
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: author.ID, PostID: postA.ID, Content: "  \n\t ",
		})
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	post := createTestPost(t, db, author)
	comment := createTestComment(t, db, author, post)

	svc := newCommentService(db)
	ctx := context.Background()

	updated, err := svc.UpdateComment(ctx, UpdateCommentInput{
		UserID:    author.ID,
		CommentID: comment.ID,
		Content:   "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	t.Run("only owner may edit", func(t *testing.T) {
		_, err := svc.UpdateComment(ctx, UpdateCommentInput{
			UserID:    other.ID,
			CommentID: comment.ID,
			Content:   "hijacked",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})
}

func TestCommentService_UpdateComment_ParentRules(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author)
	comment := createTestComment(t, db, author, post)
	sibling := createTestComment(t, db, author, post)

	svc := newCommentService(db)
	ctx := context.Background()

	t.Run("self parent rejected without mutation", func(t *testing.T) {
		_, err := svc.UpdateComment(ctx, UpdateCommentInput{
			UserID:    author.ID,
			CommentID: comment.ID,
			Content:   "should not land",
			ParentID:  &comment.ID,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)

		var reread models.Comment
		require.NoError(t, db.First(&reread, comment.ID).Error)
		assert.Equal(t, "nice", reread.Content)
		assert.Nil(t, reread.ParentID)
	})

	t.Run("parent change rejected", func(t *testing.T) {
		_, err := svc.UpdateComment(ctx, UpdateCommentInput{
			UserID:    author.ID,
			CommentID: comment.ID,
			Content:   "x",
			ParentID:  &sibling.ID,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("restating the existing parent is a no-op", func(t *testing.T) {
		reply, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:   author.ID,
			PostID:   post.ID,
			ParentID: &comment.ID,
			Content:  "reply",
		})
		require.NoError(t, err)

		updated, err := svc.UpdateComment(ctx, UpdateCommentInput{
			UserID:    author.ID,
			CommentID: reply.ID,
			Content:   "reply v2",
			ParentID:  &comment.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "reply v2", updated.Content)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, comment.ID, *updated.ParentID)
	})
}
