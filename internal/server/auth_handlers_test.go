package server

import (
	"net/http"
	"testing"

	"aihub/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		url    string
		body   map[string]any
		status int
	}{
		{"missing password", "/api/auth/login", map[string]any{"email": "u1@example.com"}, http.StatusBadRequest},
		{"unknown email", "/api/auth/login", map[string]any{"email": "who@example.com", "password": "x"}, http.StatusUnauthorized},
		{"wrong password", "/api/login", map[string]any{"email": "u1@example.com", "password": "nope"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.postJSON(t, tt.url, tt.body)
			assert.Equal(t, tt.status, status, string(body))
		})
	}

	for _, url := range []string{"/api/auth/login", "/api/login"} {
		t.Run("success via "+url, func(t *testing.T) {
			status, body := env.postJSON(t, url, map[string]any{"email": "U1@example.com", "password": "password123"})
			require.Equal(t, http.StatusOK, status, string(body))

			out := decode(t, body)
			user := out["user"].(map[string]any)
			assert.Equal(t, "u1", user["id"])
			assert.NotContains(t, user, "passwordHash")

			sub, err := middleware.ParseToken(out["token"].(string), testJWTSecret)
			require.NoError(t, err)
			assert.Equal(t, "u1", sub)
		})
	}
}
