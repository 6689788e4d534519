package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/service"
)

type BookHandler struct {
	svc *service.BookService
	log *zap.Logger
}

func NewBookHandler(svc *service.BookService, log *zap.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: log.With(zap.String("entity", "book"))}
}

// POST /book
func (h *BookHandler) Create(c *gin.Context) {
	var in models.BookInput
	if !bind(c, &in) {
		return
	}

	book, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, "book create", err)
		return
	}
	h.log.Info("book created", zap.String("slug", book.Slug))
	c.JSON(http.StatusCreated, book)
}

// GET /books/:count
func (h *BookHandler) ListRecent(c *gin.Context) {
	count, err := strconv.ParseInt(c.Param("count"), 10, 64)
	if err != nil || count < 0 {
		c.JSON(http.StatusBadRequest, "count must be a non-negative integer")
		return
	}

	books, err := h.svc.ListRecent(c.Request.Context(), count)
	if err != nil {
		fail(c, h.log, "book list", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GET /books/total
func (h *BookHandler) Count(c *gin.Context) {
	total, err := h.svc.Count(c.Request.Context())
	if err != nil {
		fail(c, h.log, "book count", err)
		return
	}
	c.JSON(http.StatusOK, total)
}

// GET /book/:slug
func (h *BookHandler) Read(c *gin.Context) {
	book, err := h.svc.Read(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.log, "book read", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// PUT /book/:slug
func (h *BookHandler) Update(c *gin.Context) {
	var in models.BookUpdate
	if !bind(c, &in) {
		return
	}

	book, err := h.svc.Update(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		fail(c, h.log, "book update", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// PATCH /book/:slug (borrado lógico)
func (h *BookHandler) Remove(c *gin.Context) {
	book, err := h.svc.Remove(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.log, "book delete", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// POST /books con {sort, order, page}
func (h *BookHandler) Page(c *gin.Context) {
	var req models.PageRequest
	if !bind(c, &req) {
		return
	}

	books, err := h.svc.Page(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, "book page", err)
		return
	}
	c.JSON(http.StatusOK, books)
}
