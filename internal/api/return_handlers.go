package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerhub-backend/internal/middleware"
	"sellerhub-backend/internal/services"
)

// ReturnHandlers contains the return moderation handlers
type ReturnHandlers struct {
	returnService *services.ReturnService
}

// NewReturnHandlers creates new return handlers
func NewReturnHandlers(returnService *services.ReturnService) *ReturnHandlers {
	return &ReturnHandlers{returnService: returnService}
}

// ListReturns returns the seller's return requests, optionally
// narrowed by ?status=.
func (h *ReturnHandlers) ListReturns(c *gin.Context) {
	sellerID := middleware.SellerID(c)

	returns, err := h.returnService.ListReturns(sellerID, c.Query("status"))
	if err != nil {
		log.Printf("Error listing returns for seller %s: %v", sellerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch returns",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    returns,
	})
}

// ApproveReturn marks a return request approved
func (h *ReturnHandlers) ApproveReturn(c *gin.Context) {
	sellerID := middleware.SellerID(c)
	returnID := c.Param("id")

	if err := h.returnService.Approve(returnID, sellerID); err != nil {
		if errors.Is(err, services.ErrReturnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Return request not found",
			})
			return
		}
		log.Printf("Error approving return %s: %v", returnID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to approve return",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Return approved",
	})
}

// RejectReturnRequest is the body for a return rejection
type RejectReturnRequest struct {
	Reason string `json:"reason"`
}

// RejectReturn marks a return request rejected with the operator's
// reason. A blank reason is a validation error and nothing is written.
func (h *ReturnHandlers) RejectReturn(c *gin.Context) {
	sellerID := middleware.SellerID(c)
	returnID := c.Param("id")

	var req RejectReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := h.returnService.Reject(returnID, sellerID, req.Reason); err != nil {
		switch {
		case errors.Is(err, services.ErrRejectionReasonRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Rejection reason is required",
			})
		case errors.Is(err, services.ErrReturnNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Return request not found",
			})
		default:
			log.Printf("Error rejecting return %s: %v", returnID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to reject return",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Return rejected",
	})
}
