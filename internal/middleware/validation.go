package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/validation"
)

// BindJSON binds and validates the request body into obj. On failure it writes
// a 400 naming the first offending field and returns false.
func BindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	resp := dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid request body")
	if field, msg, ok := validation.FieldErrors(err); ok {
		resp.Message = msg
		resp.Field = field
	} else if errors.Is(err, io.EOF) {
		resp.Message = "Request body is required"
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
	return false
}
