package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-catalog/internal/auth"
	"bookstore-catalog/internal/service"
)

const (
	identityKey     = "identity"
	tokenHeader     = "authtoken"
	invalidTokenMsg = "Invalid or expired token"
	adminOnlyMsg    = "Admin resource. Access denied."
)

// AdminChecker resuelve si un email tiene rol admin.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// AuthCheck exige un token válido del proveedor de identidad en el header authtoken
// (o Authorization: Bearer) y deja la identidad en el contexto.
func AuthCheck(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(tokenHeader)
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": invalidTokenMsg})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// AdminCheck debe ir después de AuthCheck.
func AdminCheck(users AdminChecker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": invalidTokenMsg})
			return
		}

		ok, err := users.IsAdmin(c.Request.Context(), id.Email)
		var nf *service.NotFoundError
		switch {
		case errors.As(err, &nf):
			ok = false
		case err != nil:
			log.Error("admin check failed", zap.Error(err), zap.String("email", id.Email))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Admin check has failed"})
			return
		}

		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": adminOnlyMsg})
			return
		}
		c.Next()
	}
}

// IdentityFrom devuelve la identidad que dejó AuthCheck, o nil.
func IdentityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}
