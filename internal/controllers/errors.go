package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolavall/escola_backend_v1/internal/services"
)

// respondServiceError maps the service error taxonomy to HTTP statuses:
// InvalidArgument 400, NotFound 404, Conflict 409, anything else 500.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindInvalidArgument:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
