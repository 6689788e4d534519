package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/service"
)

type SubcategoryHandler struct {
	svc *service.SubcategoryService
	log *zap.Logger
}

func NewSubcategoryHandler(svc *service.SubcategoryService, log *zap.Logger) *SubcategoryHandler {
	return &SubcategoryHandler{svc: svc, log: log.With(zap.String("entity", "subcategory"))}
}

func (h *SubcategoryHandler) Create(c *gin.Context) {
	var in models.SubcategoryInput
	if !bind(c, &in) {
		return
	}

	sub, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, "subcategory create", err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubcategoryHandler) List(c *gin.Context) {
	subs, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, "subcategory list", err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *SubcategoryHandler) Read(c *gin.Context) {
	sub, err := h.svc.Read(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.log, "subcategory read", err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubcategoryHandler) Update(c *gin.Context) {
	var in models.SubcategoryUpdate
	if !bind(c, &in) {
		return
	}

	sub, err := h.svc.Update(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		fail(c, h.log, "subcategory update", err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubcategoryHandler) Remove(c *gin.Context) {
	sub, err := h.svc.Remove(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.log, "subcategory delete", err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
