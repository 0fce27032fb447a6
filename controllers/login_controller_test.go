package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Run("returns a usable token for valid credentials", func(t *testing.T) {
		f := newFixture(t)

		w := f.request(t, http.MethodPost, "/api/login", map[string]any{"username": "root", "password": "sekret"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeObject(t, w)
		token, _ := body["token"].(string)
		require.NotEmpty(t, token)
		assert.Equal(t, "root", body["username"])
		assert.Equal(t, "Superuser", body["name"])

		// The issued token authenticates a create.
		payload := map[string]any{"title": "login works", "url": "https://example.com/"}
		w = f.request(t, http.MethodPost, "/api/blogs", payload, "Bearer "+token)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("answers 401 for a wrong password", func(t *testing.T) {
		f := newFixture(t)

		w := f.request(t, http.MethodPost, "/api/login", map[string]any{"username": "root", "password": "wrong"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid username or password", decodeObject(t, w)["error"])
	})

	t.Run("answers 401 for an unknown username", func(t *testing.T) {
		f := newFixture(t)

		w := f.request(t, http.MethodPost, "/api/login", map[string]any{"username": "ghost", "password": "sekret"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("answers 400 when credentials are missing", func(t *testing.T) {
		f := newFixture(t)

		w := f.request(t, http.MethodPost, "/api/login", map[string]any{"username": "root"}, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t)

	w := f.request(t, http.MethodPost, "/api/login", map[string]any{"username": "root", "password": "sekret"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeObject(t, w)["token"].(string)

	w = f.request(t, http.MethodPost, "/api/logout", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token no longer authenticates mutations.
	payload := map[string]any{"title": "after logout", "url": "https://example.com/"}
	w = f.request(t, http.MethodPost, "/api/blogs", payload, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token invalid", decodeObject(t, w)["error"])
}
