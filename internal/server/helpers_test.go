package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aihub/internal/config"
	"aihub/internal/middleware"
	"aihub/internal/storage"
	"aihub/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "server-test-secret-0123456789abcdef"

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	uploadDir string
}

// newTestEnv wires a full app over sqlite and a temp-dir store. User u1
// exists with password "password123".
func newTestEnv(t *testing.T, rdb *redis.Client) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Port:                "0",
		Env:                 "test",
		JWTSecret:           testJWTSecret,
		AllowedOrigins:      "http://localhost:3000",
		StorageDriver:       "local",
		UploadMaxSizeMB:     1,
		ListCacheTTLSeconds: 30,
	}
	middleware.InitMiddleware(cfg)

	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "u1", "password123")

	dir := t.TempDir()
	s, err := NewServerWithDeps(cfg, db, rdb, storage.NewLocalStore(dir))
	require.NoError(t, err)

	app := s.NewApp()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return &testEnv{app: app, db: db, uploadDir: dir}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func (e *testEnv) get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, url, nil))
}

func (e *testEnv) postJSON(t *testing.T, url string, payload any) (int, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req)
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(parsePagination(c, 20))
	})

	tests := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, 20},
		{"?page=3&limit=5", 3, 5},
		{"?page=0", 1, 20},
		{"?page=-4", 1, 20},
		{"?page=abc&limit=xyz", 1, 20},
		{"?limit=0", 1, 20},
		{"?limit=-1", 1, 20},
		{"?limit=1000", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var p Page
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
		})
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, io.ErrUnexpectedEOF, "Failed to fetch things")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "Failed to fetch things")
	assert.NotContains(t, string(body), "unexpected EOF")
}
