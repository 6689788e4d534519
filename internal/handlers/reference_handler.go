package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-catalog/internal/models"
	"bookstore-catalog/internal/service"
)

// ReferenceHandler expone el CRUD de autores, editoriales, países y categorías.
type ReferenceHandler struct {
	svc *service.ReferenceService
	log *zap.Logger
}

func NewReferenceHandler(svc *service.ReferenceService, log *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{svc: svc, log: log.With(zap.String("entity", svc.Kind()))}
}

// POST /<kind>
func (h *ReferenceHandler) Create(c *gin.Context) {
	var in models.ReferenceInput
	if !bind(c, &in) {
		return
	}

	ref, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, h.svc.Kind()+" create", err)
		return
	}
	c.JSON(http.StatusCreated, ref)
}

// GET /<kinds>
func (h *ReferenceHandler) List(c *gin.Context) {
	refs, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, h.svc.Kind()+" list", err)
		return
	}
	c.JSON(http.StatusOK, refs)
}

// GET /<kind>/:slug
func (h *ReferenceHandler) Read(c *gin.Context) {
	ref, err := h.svc.Read(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.log, h.svc.Kind()+" read", err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

// PUT /<kind>/:slug
func (h *ReferenceHandler) Update(c *gin.Context) {
	var in models.ReferenceInput
	if !bind(c, &in) {
		return
	}

	ref, err := h.svc.Update(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		fail(c, h.log, h.svc.Kind()+" update", err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

// PATCH /<kind>/:slug (borrado lógico)
func (h *ReferenceHandler) Remove(c *gin.Context) {
	ref, err := h.svc.Remove(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.log, h.svc.Kind()+" delete", err)
		return
	}
	c.JSON(http.StatusOK, ref)
}
