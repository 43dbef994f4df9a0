package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyEmail is the key for the user's email in gin context
	ContextKeyEmail = "email"
	// ContextKeyRole is the key for the user's role in gin context
	ContextKeyRole = "role"
)

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.JWTClaims, error)
}

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		// Check Bearer prefix
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user has one of roles.
// Must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient permissions")
	}
}

// GetUserID gets the user ID from the gin context
func GetUserID(c *gin.Context) uuid.UUID {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil
	}
	return userID.(uuid.UUID)
}

// GetEmail gets the email from the gin context
func GetEmail(c *gin.Context) string {
	email, exists := c.Get(ContextKeyEmail)
	if !exists {
		return ""
	}
	return email.(string)
}

// GetRole gets the role from the gin context
func GetRole(c *gin.Context) models.Role {
	role, exists := c.Get(ContextKeyRole)
	if !exists {
		return ""
	}
	return role.(models.Role)
}

// IsAdmin reports whether the authenticated user is an administrator
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == models.RoleAdmin
}
