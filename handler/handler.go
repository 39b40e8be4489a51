package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/ai-service/types"
)

// respondError maps the service error taxonomy onto HTTP statuses and
// writes the standard envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrConfiguration):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrParse):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrTransient):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, types.DataResponse{
		Status:  false,
		Message: err.Error(),
	})
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   data,
	})
}
