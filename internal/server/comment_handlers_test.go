package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComments_ThreadRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)

	status, body := env.postJSON(t, "/api/community", map[string]any{
		"title": "Q", "content": "Which model?", "category": "Help", "authorId": "u1",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	postID := decode(t, body)["id"].(string)

	status, body = env.postJSON(t, "/api/comments", map[string]any{
		"content": "Try the small one", "authorId": "u1", "type": "post", "itemId": postID,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	rootID := decode(t, body)["id"].(string)

	status, body = env.postJSON(t, "/api/comments", map[string]any{
		"content": "Agreed", "authorId": "u1", "type": "post", "itemId": postID, "parentId": rootID,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Equal(t, rootID, decode(t, body)["parentId"])

	status, body = env.get(t, "/api/comments?type=post&itemId="+postID)
	require.Equal(t, http.StatusOK, status, string(body))
	out := decode(t, body)

	comments := out["comments"].([]any)
	require.Len(t, comments, 1)
	root := comments[0].(map[string]any)
	assert.Equal(t, "Try the small one", root["content"])
	replies := root["replies"].([]any)
	require.Len(t, replies, 1)
	assert.Equal(t, "Agreed", replies[0].(map[string]any)["content"])
	assert.Equal(t, float64(1), out["pagination"].(map[string]any)["total"])

	status, body = env.get(t, "/api/community")
	require.Equal(t, http.StatusOK, status)
	post := decode(t, body)["posts"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(2), post["commentsCount"])
}

func TestComments_Validation(t *testing.T) {
	env := newTestEnv(t, nil)

	status, _ := env.get(t, "/api/comments")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.get(t, "/api/comments?type=podcast&itemId=x")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := env.postJSON(t, "/api/comments", map[string]any{
		"content": "", "authorId": "u1", "type": "news", "itemId": "n1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode(t, body)["error"], "content")

	status, _ = env.postJSON(t, "/api/comments", map[string]any{
		"content": "orphan", "authorId": "u1", "type": "news", "itemId": "missing",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
