package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth map[string]identity.Principal

func (s stubAuth) Execute(_ context.Context, token string) (identity.Principal, error) {
	p, ok := s[token]
	if !ok {
		return identity.Principal{}, httperr.Unauthenticated("invalid_token")
	}
	return p, nil
}

func newAuthRouter() *gin.Engine {
	authn := stubAuth{
		"user-token":  {UserID: "u1", Role: identity.RoleUser},
		"admin-token": {UserID: "a1", Role: identity.RoleAdmin},
	}

	r := gin.New()
	g := r.Group("/", AuthMiddleware(authn))
	g.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	})
	g.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, PrincipalFrom(c).UserID)
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", "nope").Code)

	w := do(r, http.MethodGet, "/me", "user-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic user-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestRequireAdmin(t *testing.T) {
	r := newAuthRouter()

	w := do(r, http.MethodGet, "/admin", "user-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin_required")

	w = do(r, http.MethodGet, "/admin", "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", w.Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(2)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))

	rl.Cleanup()
	assert.Len(t, rl.visitors, 2)
}
