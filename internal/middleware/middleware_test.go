package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/homely-bites/internal/auth"
	"github.com/BruksfildServices01/homely-bites/internal/httpresp"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(issuer *auth.Issuer) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(slog.New(slog.NewTextHandler(io.Discard, nil))))

	secured := r.Group("/", AuthMiddleware(issuer))
	secured.GET("/me", func(c *gin.Context) {
		httpresp.OK(c, gin.H{"id": SubjectID(c)})
	})
	secured.GET("/chef-only", RequireRole(auth.RoleChef), func(c *gin.Context) {
		httpresp.OK(c, "ok")
	})
	secured.GET("/couriers/:id", RequireRole(auth.RoleCourier), RequireSelf("id"), func(c *gin.Context) {
		httpresp.OK(c, "ok")
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, path string, headers map[string]string) (*httptest.ResponseRecorder, httpresp.Envelope) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env httpresp.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	r := newRouter(issuer)

	tok, err := issuer.Issue(auth.Principal{Role: auth.RoleCustomer, SubjectID: 7})
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w, env := do(r, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, "Token is Missing", env.Error)
	})

	t.Run("garbage token", func(t *testing.T) {
		w, env := do(r, "/me", map[string]string{"token": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid Token", env.Error)
	})

	t.Run("token header", func(t *testing.T) {
		w, env := do(r, "/me", map[string]string{"token": tok})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 7, env.Data.(map[string]any)["id"])
	})

	t.Run("bearer header", func(t *testing.T) {
		w, _ := do(r, "/me", map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed authorization", func(t *testing.T) {
		w, env := do(r, "/me", map[string]string{"Authorization": "Basic " + tok})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token is Missing", env.Error)
	})
}

func TestRequireRoleAndSelf(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	r := newRouter(issuer)

	customer, _ := issuer.Issue(auth.Principal{Role: auth.RoleCustomer, SubjectID: 1})
	courier, _ := issuer.Issue(auth.Principal{Role: auth.RoleCourier, SubjectID: 5})

	w, env := do(r, "/chef-only", map[string]string{"token": customer})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized", env.Error)

	w, _ = do(r, "/couriers/5", map[string]string{"token": courier})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, "/couriers/6", map[string]string{"token": courier})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(r, "/couriers/abc", map[string]string{"token": courier})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleRejectsUnknownRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin-only",
		func(c *gin.Context) {
			c.Set(ContextPrincipal, auth.Principal{Role: "superuser", SubjectID: 1})
		},
		RequireRole(auth.RoleAdmin, "superuser"),
		func(c *gin.Context) { httpresp.OK(c, "ok") },
	)

	w, env := do(r, "/admin-only", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_invalid", env.ErrorCode)
}

func TestRecovery(t *testing.T) {
	r := newRouter(auth.NewIssuer("secret", time.Hour))

	w, env := do(r, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", env.ErrorCode)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.GET("/ping", func(c *gin.Context) { httpresp.OK(c, "pong") })

	w, _ := do(r, "/ping", map[string]string{RequestIDHeader: "req-1"})
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.EqualValues(t, 200, line["status"])

	w, _ = do(r, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { httpresp.OK(c, nil) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
