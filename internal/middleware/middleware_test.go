package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"bookstore-catalog/internal/auth"
	"bookstore-catalog/internal/service"
)

const secret = "test-secret"

type fakeAdmins map[string]bool

func (f fakeAdmins) IsAdmin(_ context.Context, email string) (bool, error) {
	if email == "broken@example.com" {
		return false, errors.New("store down")
	}
	admin, ok := f[email]
	if !ok {
		return false, &service.NotFoundError{Entity: "user", Slug: email}
	}
	return admin, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, email string) string {
	t.Helper()
	tok, err := auth.GenerateToken(secret, auth.Identity{Email: email}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func protectedRouter(admin bool) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthCheck(auth.NewJWTVerifier(secret))}
	if admin {
		handlers = append(handlers, AdminCheck(fakeAdmins{"admin@example.com": true, "reader@example.com": false}, zap.NewNop()))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, IdentityFrom(c).Email)
	})
	r.POST("/protected", handlers...)
	return r
}

func TestAuthCheck(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{name: "authtoken header", header: "authtoken", value: token(t, "reader@example.com"), want: http.StatusOK},
		{name: "bearer header", header: "Authorization", value: "Bearer " + token(t, "reader@example.com"), want: http.StatusOK},
		{name: "missing", want: http.StatusUnauthorized},
		{name: "invalid", header: "authtoken", value: "nope", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			protectedRouter(false).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"msg":"Invalid or expired token"}`, w.Body.String())
			}
		})
	}
}

func TestAdminCheck(t *testing.T) {
	tests := []struct {
		email string
		want  int
	}{
		{email: "admin@example.com", want: http.StatusOK},
		{email: "reader@example.com", want: http.StatusForbidden},
		{email: "stranger@example.com", want: http.StatusForbidden},
		{email: "broken@example.com", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/protected", nil)
			req.Header.Set("authtoken", token(t, tt.email))
			protectedRouter(true).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, w.Header().Get("X-Request-Id"), w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := gin.New()
	r.Use(NewRateLimiter(ctx, 1, 2).Handler())
	r.GET("/books/total", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/total", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
