package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookstore-catalog/internal/auth"
	"bookstore-catalog/internal/handlers"
	"bookstore-catalog/internal/middleware"
	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/routes"
	"bookstore-catalog/internal/service"
	"bookstore-catalog/internal/testutil"
)

const secret = "routes-secret"

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, db pinger) *gin.Engine {
	t.Helper()
	catalog := testutil.NewCatalog()
	catalog.SeedDefaults()
	catalog.Users = testutil.NewUserStore(
		models.User{Email: "admin@example.com", Name: "admin", Role: models.RoleAdmin},
		models.User{Email: "reader@example.com", Name: "reader", Role: models.RoleSubscriber},
	)

	log := zap.NewNop()
	books := service.NewBookService(service.BookStores{
		Books:      catalog.Books,
		Authors:    catalog.Authors,
		Editorials: catalog.Editorials,
		Countries:  catalog.Countries,
		Categories: catalog.Categories,
	}, nil, 3)
	users := service.NewUserService(catalog.Users)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(log))
	routes.RegisterRoutes(r, routes.Handlers{
		Books:         handlers.NewBookHandler(books, log),
		Authors:       handlers.NewReferenceHandler(service.NewReferenceService("author", catalog.Authors), log),
		Editorials:    handlers.NewReferenceHandler(service.NewReferenceService("editorial", catalog.Editorials), log),
		Countries:     handlers.NewReferenceHandler(service.NewReferenceService("country", catalog.Countries), log),
		Categories:    handlers.NewReferenceHandler(service.NewReferenceService("category", catalog.Categories), log),
		Subcategories: handlers.NewSubcategoryHandler(service.NewSubcategoryService(catalog.Subcategories, catalog.Categories), log),
		Users:         handlers.NewUserHandler(users, log),
		Health:        handlers.NewHealthHandler(db),
	}, routes.Guards{
		Auth:  middleware.AuthCheck(auth.NewJWTVerifier(secret)),
		Admin: middleware.AdminCheck(users, log),
	})
	return r
}

func token(t *testing.T, email string) string {
	t.Helper()
	tok, err := auth.GenerateToken(secret, auth.Identity{Email: email, Picture: "https://img/" + email}, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, r *gin.Engine, method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("authtoken", tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookLifecycle(t *testing.T) {
	r := newRouter(t, pinger{})
	admin := token(t, "admin@example.com")

	w := do(t, r, http.MethodPost, "/api/book", "", testutil.BookInput())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"msg":"Invalid or expired token"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/book", token(t, "reader@example.com"), testutil.BookInput())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, "/api/book", admin, testutil.BookInput())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "rebelion-en-la-granja-doubleday", created.Slug)
	assert.Equal(t, models.StatusActive, created.Status)

	w = do(t, r, http.MethodGet, "/api/book/rebelion-en-la-granja-doubleday", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Title    string            `json:"title"`
		Category *models.Reference `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Rebelión en la granja", detail.Title)
	require.NotNil(t, detail.Category)
	assert.Equal(t, "Ficción", detail.Category.Name)

	w = do(t, r, http.MethodGet, "/api/books/total", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())

	w = do(t, r, http.MethodGet, "/api/books/5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recent []models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recent))
	assert.Len(t, recent, 1)

	w = do(t, r, http.MethodPost, "/api/books", "", models.PageRequest{Sort: "title", Order: "asc", Page: 1})
	require.Equal(t, http.StatusOK, w.Code)
	var page []models.BookDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page, 1)

	w = do(t, r, http.MethodPatch, "/api/book/rebelion-en-la-granja-doubleday", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var removed models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &removed))
	assert.Equal(t, models.StatusInactive, removed.Status)

	w = do(t, r, http.MethodGet, "/api/book/rebelion-en-la-granja-doubleday", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"The book does not exist or is inactive."}`, w.Body.String())
}

func TestBookErrors(t *testing.T) {
	r := newRouter(t, pinger{})
	admin := token(t, "admin@example.com")

	in := testutil.BookInput()
	in.Author = "jose-saramago"
	w := do(t, r, http.MethodPost, "/api/book", admin, in)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "jose-saramago")

	in = testutil.BookInput()
	in.Title = ""
	w = do(t, r, http.MethodPost, "/api/book", admin, in)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title")

	w = do(t, r, http.MethodGet, "/api/books/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/books", "", map[string]string{"sort": "isbn"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/books", "", map[string]int64{"page": 9223372036854775807})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "page")

	w = do(t, r, http.MethodPut, "/api/book/unknown-slug", admin, models.BookUpdate{Title: "Otro"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReferenceRoutes(t *testing.T) {
	r := newRouter(t, pinger{})

	w := do(t, r, http.MethodPost, "/api/author", "", models.ReferenceInput{Name: "Gabriel García Márquez"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var author models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &author))
	assert.Equal(t, "gabriel-garcia-marquez", author.Slug)

	w = do(t, r, http.MethodPost, "/api/author", "", models.ReferenceInput{Name: "Gabriel Garcia Marquez"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, path := range []string{"/api/countries", "/api/countryes"} {
		w = do(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		var countries []models.Reference
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &countries))
		assert.Len(t, countries, 1, path)
	}

	w = do(t, r, http.MethodPost, "/api/category", "", models.ReferenceInput{Name: "Poesía"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/category", token(t, "admin@example.com"), models.ReferenceInput{Name: "Poesía"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPatch, "/api/editorial/doubleday", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/api/editorial/doubleday", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"The editorial does not exist or is inactive."}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/subcategory", "", models.SubcategoryInput{Name: "Terror", Parent: "ficcion"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(t, r, http.MethodPost, "/api/subcategory", "", models.SubcategoryInput{Name: "Cuentos", Parent: "ensayo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserRoutes(t *testing.T) {
	r := newRouter(t, pinger{})
	fresh := token(t, "Nuevo.Lector@Example.com")

	w := do(t, r, http.MethodPost, "/api/current-user", fresh, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/create-or-update-user", fresh, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "nuevo.lector@example.com", user.Email)
	assert.Equal(t, "nuevo.lector", user.Name)
	assert.Equal(t, models.RoleSubscriber, user.Role)

	w = do(t, r, http.MethodPost, "/api/current-user", fresh, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/current-admin", fresh, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"msg":"Admin resource. Access denied."}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/current-admin", token(t, "admin@example.com"), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/current-user", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	r := newRouter(t, pinger{})
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/readyz", "", nil).Code)

	r = newRouter(t, pinger{err: errors.New("no primary")})
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, r, http.MethodGet, "/readyz", "", nil).Code)
}
