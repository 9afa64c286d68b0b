// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/capability"
	"github.com/your-org/pos-backend/internal/pkg/session"
)

// AuthMiddleware creates JWT authentication middleware. Resolved capabilities
// are cached per operator in the session cache so repeated requests do not
// re-derive them on every call.
func AuthMiddleware(cfg *config.Config, sessions *session.Cache) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		entry, ok := sessions.Get(claims.OperatorID)
		if !ok {
			sessions.Put(claims.OperatorID, claims.Role, capability.ForRole(claims.Role))
			entry, _ = sessions.Get(claims.OperatorID)
		}

		// Store operator information in context
		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_name", claims.Name)
		c.Set("operator_role", entry.Role)
		c.Set("capabilities", entry.Capabilities)

		c.Next()
	}
}

// RequireCapability gates a route on one capability
func RequireCapability(cap capability.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		caps, exists := c.Get("capabilities")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !caps.(capability.Set).Has(cap) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetOperatorIDFromContext extracts the operator ID from gin context
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	operatorID, exists := c.Get("operator_id")
	if !exists {
		return "", false
	}
	return operatorID.(string), true
}

// GetCapabilitiesFromContext extracts the capability set from gin context
func GetCapabilitiesFromContext(c *gin.Context) (capability.Set, bool) {
	caps, exists := c.Get("capabilities")
	if !exists {
		return nil, false
	}
	return caps.(capability.Set), true
}
