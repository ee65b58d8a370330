package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/testutil"
	"storefront/internal/utils"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, user domain.User) string {
	t.Helper()
	tok, _, err := utils.GenerateJWT(&user, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestJWTAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/me", JWTAuthMiddleware(testSecret), func(c *gin.Context) {
		id, _ := UserID(c)
		claims, _ := Claims(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": claims.Role, "level": c.GetInt(ContextRoleLevel)})
	})
	user := domain.User{ID: 7, Email: "a@example.com", Role: domain.Role{Name: domain.RoleUser, Level: 1}}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token(t, user), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.JSONEq(t, `{"id":7,"role":"user","level":1}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	gdb := testutil.OpenDB(t)
	users := repository.NewUserRepository(gdb)
	admin := testutil.CreateUser(t, gdb, "admin@example.com", domain.RoleAdmin)
	shopper := testutil.CreateUser(t, gdb, "shopper@example.com", domain.RoleUser)

	router := gin.New()
	router.GET("/admin", JWTAuthMiddleware(testSecret), RequireRole(users, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/unguarded", RequireRole(users, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	do := func(path, tok string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, do("/admin", token(t, admin)).Code)
	w := do("/admin", token(t, shopper))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"admin access required"}`, w.Body.String())
	assert.Equal(t, http.StatusUnauthorized, do("/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/unguarded", "").Code)

	// A token issued before a demotion no longer opens admin routes
	adminToken := token(t, admin)
	role, err := users.RoleByName(context.Background(), domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, users.SetRole(context.Background(), admin.ID, role.ID))
	assert.Equal(t, http.StatusForbidden, do("/admin", adminToken).Code)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLogger(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), Logger())
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
