package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-catalog/internal/middleware"
	"bookstore-catalog/internal/service"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log.With(zap.String("entity", "user"))}
}

// POST /create-or-update-user
func (h *UserHandler) CreateOrUpdate(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid or expired token"})
		return
	}

	user, err := h.svc.CreateOrUpdate(c.Request.Context(), id.Email, id.Name, id.Picture)
	if err != nil {
		fail(c, h.log, "user sync", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /current-user y /current-admin
func (h *UserHandler) Current(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid or expired token"})
		return
	}

	user, err := h.svc.Current(c.Request.Context(), id.Email)
	if err != nil {
		fail(c, h.log, "current user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
