package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerhub-backend/internal/middleware"
	"sellerhub-backend/internal/services"
)

// OrderHandlers contains the seller order view handlers
type OrderHandlers struct {
	orderService *services.OrderService
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(orderService *services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// ListOrders returns the orders containing the seller's products, with
// optional ?search= and ?status= narrowing applied after the fetch.
func (h *OrderHandlers) ListOrders(c *gin.Context) {
	sellerID := middleware.SellerID(c)

	filter := services.OrderFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	orders, err := h.orderService.SellerOrders(sellerID, filter)
	if err != nil {
		log.Printf("Error aggregating orders for seller %s: %v", sellerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder returns one order from the seller's aggregated view
func (h *OrderHandlers) GetOrder(c *gin.Context) {
	sellerID := middleware.SellerID(c)
	orderID := c.Param("id")

	orders, err := h.orderService.SellerOrders(sellerID, services.OrderFilter{})
	if err != nil {
		log.Printf("Error aggregating orders for seller %s: %v", sellerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch order",
		})
		return
	}

	for _, order := range orders {
		if order.ID == orderID {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    order,
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   "Order not found",
	})
}

// UpdateItemStatusRequest is the body for an item status change
type UpdateItemStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateItemStatus changes the fulfilment status of one of the
// seller's line items.
func (h *OrderHandlers) UpdateItemStatus(c *gin.Context) {
	sellerID := middleware.SellerID(c)
	itemID := c.Param("id")

	var req UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := h.orderService.UpdateItemStatus(itemID, sellerID, req.Status); err != nil {
		if errors.Is(err, services.ErrOrderItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Order item not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item status updated",
	})
}
