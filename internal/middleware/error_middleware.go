package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// HandleAPIError maps service errors to a status code and the failure envelope.
func HandleAPIError(c *gin.Context, err error) {
	status, resp := errorResponse(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, resp)
}

func errorResponse(err error) (int, *dto.ErrorResponse) {
	var message, field string
	if ce, ok := apperrors.AsCustom(err); ok {
		message, field = ce.Message, ce.Field
	}
	with := func(fallback string) string {
		if message != "" {
			return message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrPartialEnrollment):
		return http.StatusInternalServerError,
			dto.NewErrorResponse(dto.ErrorCodePartialEnrollment, "Student could not be linked to its batch")
	case errors.Is(err, apperrors.ErrPartialUnenrollment):
		return http.StatusInternalServerError,
			dto.NewErrorResponse(dto.ErrorCodePartialEnrollment, "Student was removed from its batch but could not be deleted")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, with("Validation failed")).WithField(field)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeInvalidCredentials, with("Invalid credentials")).WithField(field)
	case errors.Is(err, apperrors.ErrTooManyAttempts):
		return http.StatusTooManyRequests,
			dto.NewErrorResponse(dto.ErrorCodeTooManyAttempts, "Too many login attempts, try again later")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, with("Resource not found"))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict,
			dto.NewErrorResponse(dto.ErrorCodeResourceAlreadyExists, with("Resource already exists")).WithField(field)
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorResponse(dto.ErrorCodeConflict, with("Conflict"))
	default:
		return http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// Recovery turns panics into the internal error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error"))
	})
}
