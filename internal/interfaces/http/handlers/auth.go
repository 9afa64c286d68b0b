// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/operator"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/capability"
	"github.com/your-org/pos-backend/internal/pkg/session"
)

// AuthHandler handles operator sign-in
type AuthHandler struct {
	operatorService *operator.Service
	jwtManager      *auth.JWTManager
	sessions        *session.Cache
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(operatorService *operator.Service, cfg *config.Config, sessions *session.Cache) *AuthHandler {
	return &AuthHandler{
		operatorService: operatorService,
		jwtManager:      auth.NewJWTManager(cfg),
		sessions:        sessions,
	}
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	op, err := h.operatorService.Authenticate(c.Request.Context(), req.Name, req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, operator.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid name or PIN",
			})
		case errors.Is(err, operator.ErrOperatorInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Operator is deactivated",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to sign in",
			})
		}
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(op.ID, op.Name, op.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	h.sessions.Put(op.ID, op.Role, capability.ForRole(op.Role))

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"data": gin.H{
			"access_token": token,
			"operator": gin.H{
				"id":   op.ID,
				"name": op.Name,
				"role": op.Role,
			},
		},
	})
}

// Logout handles POST /auth/logout, dropping the cached session state
func (h *AuthHandler) Logout(c *gin.Context) {
	if operatorID, ok := middleware.GetOperatorIDFromContext(c); ok {
		h.sessions.Invalidate(operatorID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully",
	})
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	op, err := h.operatorService.GetOperator(c.Request.Context(), operatorID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Operator not found",
		})
		return
	}

	caps, _ := middleware.GetCapabilitiesFromContext(c)
	capList := make([]capability.Capability, 0, len(caps))
	for cap := range caps {
		capList = append(capList, cap)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data": gin.H{
			"id":           op.ID,
			"name":         op.Name,
			"role":         op.Role,
			"capabilities": capList,
		},
	})
}
