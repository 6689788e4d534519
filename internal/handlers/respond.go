package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore-catalog/internal/middleware"
	"bookstore-catalog/internal/service"
)

// fail traduce un error de servicio a la respuesta HTTP.
// Los errores del cliente van como string plano, el 404 como {"msg": ...}.
func fail(c *gin.Context, log *zap.Logger, op string, err error) {
	var (
		notFound   *service.NotFoundError
		validation *service.ValidationError
		reference  *service.ReferenceError
		duplicate  *service.DuplicateError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.As(err, &validation), errors.As(err, &reference), errors.As(err, &duplicate):
		log.Warn(op+" rejected", zap.Error(err), zap.String("request_id", middleware.RequestIDFrom(c)))
		c.JSON(http.StatusBadRequest, err.Error())
	default:
		log.Error(op+" failed", zap.Error(err), zap.String("request_id", middleware.RequestIDFrom(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": op + " has failed"})
	}
}

// bind decodifica el cuerpo JSON; responde 400 si no se puede.
func bind(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
