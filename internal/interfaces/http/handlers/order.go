// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/inventory"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/pkg/receipt"
)

// OrderHandler handles order history, sales reports and receipt export
type OrderHandler struct {
	orderService     *order.Service
	inventoryService *inventory.Service
	receipts         *receipt.Builder
	pdfRenderer      *receipt.PDFRenderer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, inventoryService *inventory.Service, receipts *receipt.Builder, pdfRenderer *receipt.PDFRenderer) *OrderHandler {
	return &OrderHandler{
		orderService:     orderService,
		inventoryService: inventoryService,
		receipts:         receipts,
		pdfRenderer:      pdfRenderer,
	}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	response, err := h.orderService.GetOrders(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    response,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	o, err := h.orderService.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// GetReceipt handles GET /orders/:id/receipt. The default is the printable
// PDF document; ?format=text returns the plain thermal-printer slip.
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	o, err := h.orderService.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	rcpt := h.receipts.FromOrder(o)

	if c.Query("format") == "text" {
		c.String(http.StatusOK, rcpt.Text())
		return
	}

	buf, err := h.pdfRenderer.Render(rcpt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render receipt PDF",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", o.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GetSalesSummary handles GET /reports/sales
func (h *OrderHandler) GetSalesSummary(c *gin.Context) {
	summary, err := h.orderService.GetSalesSummary(c.Request.Context(), c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to aggregate sales",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sales summary retrieved successfully",
		"data":    summary,
	})
}

// GetStockMovements handles GET /inventory/movements/:productId
func (h *OrderHandler) GetStockMovements(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	movements, err := h.inventoryService.GetMovements(c.Request.Context(), uint(productID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock movements",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock movements retrieved successfully",
		"data":    movements,
	})
}
