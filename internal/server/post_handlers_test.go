package server

import (
	"net/http"
	"strings"
	"testing"

	"playto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_AsGuest(t *testing.T) {
	app, _, db := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", map[string]string{
		"content": "hello from a guest",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	assert.Equal(t, "hello from a guest", post.Content)
	assert.True(t, strings.HasPrefix(post.Author.Username, models.GuestPrefix))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePost_Validation(t *testing.T) {
	app, _, _ := setupTestServer(t)

	t.Run("empty content", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", map[string]string{"content": "   "})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("over limit", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", map[string]string{
			"content": strings.Repeat("a", models.MaxPostContentLen+1),
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, models.CodeValidation, body.Code)
	})
}

func TestGetPosts(t *testing.T) {
	app, _, db := setupTestServer(t)
	_, post := createUserWithPost(t, db, "author")

	resp := doJSON(t, app, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.Equal(t, "author", posts[0].Author.Username)
	assert.False(t, posts[0].HasLiked)

	t.Run("search filters", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts?search=nomatch", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []models.Post
		decodeBody(t, resp, &posts)
		assert.Empty(t, posts)
	})
}

func TestGetPost(t *testing.T) {
	app, _, db := setupTestServer(t)
	author, post := createUserWithPost(t, db, "author")

	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "threaded"}
	require.NoError(t, db.Create(comment).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/posts/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Post
	decodeBody(t, resp, &got)
	assert.Equal(t, post.ID, got.ID)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "threaded", got.Comments[0].Content)

	t.Run("not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/999", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateComment_Handler(t *testing.T) {
	app, _, db := setupTestServer(t)
	_, post := createUserWithPost(t, db, "author")

	resp := doJSON(t, app, http.MethodPost, "/api/comments", map[string]interface{}{
		"postId":  post.ID,
		"content": "a reply thread begins",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var comment models.Comment
	decodeBody(t, resp, &comment)
	assert.Equal(t, post.ID, comment.PostID)

	t.Run("reply to comment", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/comments", map[string]interface{}{
			"postId":   post.ID,
			"parentId": comment.ID,
			"content":  "and continues",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var reply models.Comment
		decodeBody(t, resp, &reply)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, comment.ID, *reply.ParentID)
	})

	t.Run("missing postId", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/comments", map[string]interface{}{
			"content": "orphan",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateComment_Handler(t *testing.T) {
	app, _, db := setupTestServer(t)
	author, post := createUserWithPost(t, db, "author")

	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "original"}
	require.NoError(t, db.Create(comment).Error)

	// A guest session is never the comment's author.
	resp := doJSON(t, app, http.MethodPut, "/api/comments/1", map[string]string{
		"content": "defaced",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var reread models.Comment
	require.NoError(t, db.First(&reread, comment.ID).Error)
	assert.Equal(t, "original", reread.Content)
}
