package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alphy12345/Alp-version-hal-cost-estimation/database"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/middleware"
)

// newAuthRouter seeds a throwaway operator store and wires the login routes
// plus stub pages behind the session gates.
func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "auth_test.db"), "admin", "secret"))
	t.Cleanup(func() { database.DB.Close() })

	r := gin.New()
	r.LoadHTMLGlob("../templates/*")
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test"))))

	r.GET("/login", ShowLogin)
	r.POST("/login", Login)
	r.GET("/logout", Logout)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	authorized.GET("/estimate", func(c *gin.Context) { c.String(http.StatusOK, "estimate page") })

	admin := authorized.Group("/config")
	admin.Use(middleware.AdminRequired())
	admin.GET("", func(c *gin.Context) { c.String(http.StatusOK, "config page") })

	return r
}

func seedOperator(t *testing.T, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = database.DB.Exec("INSERT INTO users (username, password_hash, role) VALUES (?, ?, 'OPERATOR')", username, string(hash))
	require.NoError(t, err)
}

func login(t *testing.T, r *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWithCookies(r *gin.Engine, path string, from *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if from != nil {
		for _, c := range from.Result().Cookies() {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginUnknownUser(t *testing.T) {
	r := newAuthRouter(t)

	w := login(t, r, "nobody", "whatever")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestLoginWrongPassword(t *testing.T) {
	r := newAuthRouter(t)

	w := login(t, r, "admin", "not-the-password")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Password")
}

func TestLoginOpensSession(t *testing.T) {
	r := newAuthRouter(t)

	// Gated page is unreachable before login.
	w := getWithCookies(r, "/estimate", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	loginResp := login(t, r, "admin", "secret")
	require.Equal(t, http.StatusFound, loginResp.Code)
	assert.Equal(t, "/", loginResp.Header().Get("Location"))

	w = getWithCookies(r, "/estimate", loginResp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "estimate page")
}

func TestAdminGate(t *testing.T) {
	r := newAuthRouter(t)
	seedOperator(t, "operator", "op-secret")

	// Non-admin operators are bounced back to the estimation page.
	opResp := login(t, r, "operator", "op-secret")
	require.Equal(t, http.StatusFound, opResp.Code)

	w := getWithCookies(r, "/config", opResp)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/estimate", w.Header().Get("Location"))

	adminResp := login(t, r, "admin", "secret")
	w = getWithCookies(r, "/config", adminResp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "config page")
}

func TestLogoutClearsSession(t *testing.T) {
	r := newAuthRouter(t)

	loginResp := login(t, r, "admin", "secret")

	logoutResp := getWithCookies(r, "/logout", loginResp)
	require.Equal(t, http.StatusFound, logoutResp.Code)
	assert.Equal(t, "/login", logoutResp.Header().Get("Location"))

	w := getWithCookies(r, "/estimate", logoutResp)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginStoreFailureIsNotBadCredentials(t *testing.T) {
	r := newAuthRouter(t)

	// Valid credentials, broken store: the operator must see a server
	// error, not a password rejection.
	require.NoError(t, database.DB.Close())

	w := login(t, r, "admin", "secret")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
	assert.NotContains(t, w.Body.String(), "Invalid Password")
}
