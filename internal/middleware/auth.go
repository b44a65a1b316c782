package middleware

import (
	"net/http"
	"strings"

	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// ContextActor is the context key holding the authenticated user
// snapshot for the request.
const ContextActor = "actor"

// AuthRequired checks for a valid bearer token and places the actor
// snapshot from its claims into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextActor, &models.User{
			ID:   claims.UserID,
			Name: claims.Name,
			Role: claims.Role,
			Team: claims.Team,
		})

		c.Next()
	}
}

// AdminRequired rejects requests whose actor is not admin or
// superadmin. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil || !actor.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated user snapshot for the request, or
// nil when unauthenticated.
func GetActor(c *gin.Context) *models.User {
	if v, exists := c.Get(ContextActor); exists {
		if actor, ok := v.(*models.User); ok {
			return actor
		}
	}
	return nil
}
