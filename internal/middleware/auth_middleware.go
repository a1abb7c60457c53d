package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/auth"
)

// Context keys set by AdminAuth.
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware guards admin routes
type AuthMiddleware struct {
	jwtService *auth.JWTService
	required   bool
}

// NewAuthMiddleware creates a new AuthMiddleware. When required is false every request passes.
func NewAuthMiddleware(jwtService *auth.JWTService, required bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		required:   required,
	}
}

// AdminAuth validates the bearer token from the Authorization header.
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.required {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
