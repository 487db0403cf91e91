package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/servquick/household-services/internal/config"
	dbpkg "github.com/servquick/household-services/internal/db"
	"github.com/servquick/household-services/internal/routes"
)

const testAdminPassword = "admin123"

// Polling bounds for asserting on the async audit trail.
const (
	waitFor = 2 * time.Second
	tick    = 20 * time.Millisecond
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))
	require.NoError(t, dbpkg.Seed(db, testAdminPassword))

	cfg := &config.Config{SessionSecret: "test-secret", Env: "test"}

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, nil)
	return r, db
}

// client carries session cookies between requests, one browser per role.
type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, r *gin.Engine) *client {
	return &client{t: t, r: r, cookies: map[string]*http.Cookie{}}
}

func (cl *client) do(method, path string, body any) *httptest.ResponseRecorder {
	cl.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(cl.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		cl.cookies[ck.Name] = ck
	}
	return w
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(http.MethodGet, path, nil)
}

func (cl *client) post(path string, body any) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, path, body)
}

func (cl *client) login(username, password, role string) *httptest.ResponseRecorder {
	return cl.post("/login", gin.H{
		"username": username,
		"password": password,
		"role":     role,
	})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decode(t, w)["error_code"].(string)
	return code
}

// --------- Fixtures over the public API ---------

func signupCustomer(t *testing.T, r *gin.Engine, username string) {
	t.Helper()
	cl := newClient(t, r)
	w := cl.post("/signup/customer", gin.H{
		"username":         username,
		"password":         "secret123",
		"confirm_password": "secret123",
		"name":             username,
		"address":          "12 Main St",
		"pincode":          "560001",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func signupProfessional(t *testing.T, r *gin.Engine, username, service string) {
	t.Helper()
	cl := newClient(t, r)
	w := cl.post("/signup/professional", gin.H{
		"username":         username,
		"password":         "secret123",
		"confirm_password": "secret123",
		"name":             username,
		"address":          "34 Side St",
		"pincode":          "560002",
		"service_type":     service,
		"experience":       "4 years",
		"description":      "reliable",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func adminClient(t *testing.T, r *gin.Engine) *client {
	t.Helper()
	cl := newClient(t, r)
	w := cl.login("admin", testAdminPassword, "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return cl
}

// approveProfessional flips the pending flag through the admin endpoint,
// looking the profile id up from the dashboard's pending list.
func approveProfessional(t *testing.T, r *gin.Engine, username string) {
	t.Helper()
	admin := adminClient(t, r)

	w := admin.get("/admin/dashboard")
	require.Equal(t, http.StatusOK, w.Code)

	pending, _ := decode(t, w)["pending_professionals"].([]any)
	for _, p := range pending {
		row := p.(map[string]any)
		user := row["user"].(map[string]any)
		if user["username"] == username {
			id := uint(row["id"].(float64))
			resp := admin.post("/admin/dashboard", gin.H{
				"action":          "approve",
				"professional_id": id,
			})
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			return
		}
	}
	t.Fatalf("professional %s not in pending list", username)
}
