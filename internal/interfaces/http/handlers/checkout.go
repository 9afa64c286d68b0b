// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/pos-backend/internal/domain/checkout"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the payment endpoint
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// ProcessPayment handles POST /checkout
func (h *CheckoutHandler) ProcessPayment(c *gin.Context) {
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	c.Header(sessionHeader, sessionID)

	var req checkout.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.checkoutService.ProcessPayment(c.Request.Context(), sessionID, operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, checkout.ErrInvalidPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payment method",
			})
		case errors.Is(err, checkout.ErrInsufficientCash):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Cash received is less than the total amount",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Failed to process payment",
			})
		}
		return
	}

	status := http.StatusCreated
	message := "Transaction completed successfully"
	if result.SavedOffline {
		status = http.StatusAccepted
		message = "Transaction saved offline, will sync when connection returns"
	}

	c.JSON(status, gin.H{
		"message": message,
		"data":    result,
	})
}
