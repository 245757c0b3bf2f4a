package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/database"
	"warbler/backend/internal/hub"
	"warbler/backend/internal/models"
	"warbler/backend/internal/store"
	"warbler/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret-key"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	store  *store.Store
	hub    *hub.Hub
}

// setupTestServer wires the handlers to an in-memory SQLite database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	st := store.New(db)
	hb := hub.NewHub()
	h := New(st, hb, Config{JWTSecret: testSecret})

	r := gin.New()
	require.NoError(t, h.Routes(r))

	return &testServer{router: r, db: db, store: st, hub: hb}
}

func (ts *testServer) user(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := ts.store.Register(context.Background(), username, "password123")
	require.NoError(t, err)
	return u
}

// do sends a request as userID (0 for anonymous). A non-nil form is sent
// url-encoded.
func (ts *testServer) do(t *testing.T, method, path string, form url.Values, userID uint) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if userID != 0 {
		token, err := jwt.GenerateToken(userID, testSecret)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// flashes decodes the flash cookie set by a redirecting response.
func flashes(t *testing.T, w *httptest.ResponseRecorder) []Flash {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie && c.Value != "" {
			out, err := decodeFlashes(c.Value)
			require.NoError(t, err)
			return out
		}
	}
	return nil
}

func idPath(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}
