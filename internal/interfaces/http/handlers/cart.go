// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/pkg/connectivity"
)

// sessionHeader carries the terminal session id; one cashier screen keeps one
// session for the life of its sale.
const sessionHeader = "X-Terminal-Session"

// CartHandler handles cart endpoints. The cart itself is pure in-memory
// state; this handler is where product lookups and the stock ceiling live,
// standing in for the UI that disables the add button at max stock.
type CartHandler struct {
	carts          *cart.Store
	productService *product.Service
	monitor        *connectivity.Monitor
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Store, productService *product.Service, monitor *connectivity.Monitor) *CartHandler {
	return &CartHandler{
		carts:          carts,
		productService: productService,
		monitor:        monitor,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.carts.Get(sessionID),
	})
}

// AddItemRequest is the body for POST /cart/items
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.resolveProduct(c, req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve product",
		})
		return
	}

	// Stock ceiling: quantity already in the cart plus one more unit must
	// not exceed the known stock.
	inCart := 0
	for _, line := range h.carts.Get(sessionID).Lines {
		if line.Product.ID == prod.ID {
			inCart = line.Quantity
			break
		}
	}
	if !prod.InStock(inCart + 1) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Insufficient stock",
			"data": gin.H{
				"product_id": prod.ID,
				"stock":      prod.Stock,
			},
		})
		return
	}

	snapshot := h.carts.AddItem(sessionID, *prod)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    snapshot,
	})
}

// UpdateItemRequest is the body for PUT /cart/items/:id
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /cart/items/:id. A quantity of zero or less removes
// the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.Quantity > 0 {
		if prod, err := h.resolveProduct(c, uint(productID)); err == nil && !prod.InStock(req.Quantity) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Insufficient stock",
				"data": gin.H{
					"product_id": prod.ID,
					"stock":      prod.Stock,
				},
			})
			return
		}
	}

	snapshot := h.carts.UpdateQuantity(sessionID, uint(productID), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    snapshot,
	})
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	snapshot := h.carts.RemoveItem(sessionID, uint(productID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    snapshot,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	snapshot := h.carts.Clear(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    snapshot,
	})
}

// resolveProduct looks the product up in the backend, falling back to the
// offline catalog snapshot when the backend is unreachable
func (h *CartHandler) resolveProduct(c *gin.Context, productID uint) (*product.Product, error) {
	if h.monitor.Online() {
		return h.productService.GetProduct(c.Request.Context(), productID)
	}

	products, err := h.productService.OfflineProducts(c.Request.Context())
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, product.ErrProductNotFound
}

// getOrCreateSessionID reads the terminal session header or mints a fresh id,
// echoing it back so the client can keep it
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	c.Header(sessionHeader, sessionID)
	return sessionID
}
