package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "2b1f6f37-6a51-4f5e-9d0e-5e9ad7a0b001",
		"email":   "staff@pharmapos.local",
		"role":    role,
		"exp":     time.Now().Add(expiresIn).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", middleware.JWTAuth(testSecret))
	if len(roles) > 0 {
		grp.Use(middleware.RequireRole(roles...))
	}
	grp.GET("/ping", func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_MissingToken(t *testing.T) {
	r := newProtectedRouter()
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Basic abc").Code)
}

func TestJWTAuth_InvalidSignature(t *testing.T) {
	r := newProtectedRouter()
	token := signToken(t, "other-secret", "staff", time.Hour)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	r := newProtectedRouter()
	token := signToken(t, testSecret, "staff", -time.Hour)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}

func TestJWTAuth_ValidTokenExposesClaims(t *testing.T) {
	r := newProtectedRouter()
	token := signToken(t, testSecret, "staff", time.Hour)
	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestRequireRole(t *testing.T) {
	r := newProtectedRouter("admin")

	staffToken := signToken(t, testSecret, "staff", time.Hour)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+staffToken).Code)

	adminToken := signToken(t, testSecret, "admin", time.Hour)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+adminToken).Code)
}
