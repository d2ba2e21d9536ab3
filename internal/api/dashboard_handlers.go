package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerhub-backend/internal/middleware"
	"sellerhub-backend/internal/services"
)

// DashboardHandlers contains the dashboard handlers
type DashboardHandlers struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandlers creates new dashboard handlers
func NewDashboardHandlers(dashboardService *services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

// GetDashboard returns the seller's summary statistics, recomputed on
// every call.
func (h *DashboardHandlers) GetDashboard(c *gin.Context) {
	sellerID := middleware.SellerID(c)

	summary, err := h.dashboardService.Summary(sellerID)
	if err != nil {
		log.Printf("Error building dashboard for seller %s: %v", sellerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to build dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}
