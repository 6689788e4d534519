package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"not found", &service.NotFoundError{Entity: "author", Slug: "x"}, http.StatusNotFound, `{"msg":"The author does not exist or is inactive."}`},
		{"validation", &service.ValidationError{Field: "title", Message: "title is required"}, http.StatusBadRequest, `"title is required"`},
		{"reference", &service.ReferenceError{Entity: "country", Field: "country", Value: "narnia"}, http.StatusBadRequest, `"country \"narnia\" does not exist (field country)"`},
		{"duplicate", &service.DuplicateError{Entity: "book", Key: "a-b"}, http.StatusBadRequest, `"book \"a-b\" already exists"`},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, `{"msg":"book create has failed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			fail(c, zap.NewNop(), "book create", tt.err)
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestBind(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var in models.ReferenceInput
	assert.False(t, bind(c, &in))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Chile"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	assert.True(t, bind(c, &in))
	assert.Equal(t, "Chile", in.Name)
}
