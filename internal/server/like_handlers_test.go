package server

import (
	"net/http"
	"testing"

	"aihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikes_ToggleTwice(t *testing.T) {
	env := newTestEnv(t, nil)

	status, body := env.postJSON(t, "/api/news", map[string]any{"title": "N", "category": "LLM", "authorId": "u1"})
	require.Equal(t, http.StatusCreated, status, string(body))
	newsID := decode(t, body)["id"].(string)

	like := map[string]any{"userId": "u1", "type": "news", "itemId": newsID}

	status, body = env.postJSON(t, "/api/likes", like)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, true, decode(t, body)["liked"])

	status, body = env.postJSON(t, "/api/likes", like)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, false, decode(t, body)["liked"])

	var n int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestLikes_Validation(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing user", map[string]any{"type": "news", "itemId": "n1"}},
		{"missing type", map[string]any{"userId": "u1", "itemId": "n1"}},
		{"unknown type", map[string]any{"userId": "u1", "type": "article", "itemId": "n1"}},
		{"unknown item", map[string]any{"userId": "u1", "type": "news", "itemId": "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.postJSON(t, "/api/likes", tt.body)
			assert.Equal(t, http.StatusBadRequest, status, string(body))
		})
	}
}
