package server

import (
	"net/http"
	"strings"
	"testing"

	"playto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "newuser",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signupBody struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	decodeBody(t, resp, &signupBody)
	assert.NotEmpty(t, signupBody.Token)
	assert.Equal(t, "newuser", signupBody.User.Username)

	t.Run("duplicate username", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
			"username": "newuser",
			"password": "other",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
			"username": "nopassword",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "newuser",
			"password": "hunter22",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "newuser",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("login to unknown user", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "ghost",
			"password": "whatever",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoginRejectsGuestAccounts(t *testing.T) {
	app, _, db := setupTestServer(t)

	guest := &models.User{Username: models.GuestPrefix + "abc123", Password: ""}
	require.NoError(t, db.Create(guest).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": guest.Username,
		"password": "",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMe_GuestIdentity(t *testing.T) {
	app, _, _ := setupTestServer(t)

	// First anonymous request mints a session cookie and a guest user.
	resp := doJSON(t, app, http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "guest request should set a session cookie")

	var first struct {
		IsAuthenticated bool              `json:"isAuthenticated"`
		User            models.PublicUser `json:"user"`
	}
	decodeBody(t, resp, &first)
	assert.False(t, first.IsAuthenticated)
	assert.True(t, strings.HasPrefix(first.User.Username, models.GuestPrefix))

	// The same cookie resolves to the same guest on every request.
	resp = doJSON(t, app, http.MethodGet, "/api/users/me", nil, func(r *http.Request) {
		r.AddCookie(cookie)
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second struct {
		User models.PublicUser `json:"user"`
	}
	decodeBody(t, resp, &second)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestGetMe_Authenticated(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "realuser",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signup struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &signup)

	resp = doJSON(t, app, http.MethodGet, "/api/users/me", nil, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+signup.Token)
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		IsAuthenticated bool              `json:"isAuthenticated"`
		User            models.PublicUser `json:"user"`
	}
	decodeBody(t, resp, &me)
	assert.True(t, me.IsAuthenticated)
	assert.Equal(t, "realuser", me.User.Username)
}

func TestLogoutClearsSession(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
