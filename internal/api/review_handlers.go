package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerhub-backend/internal/middleware"
	"sellerhub-backend/internal/services"
)

// ReviewHandlers contains the review moderation handlers
type ReviewHandlers struct {
	reviewService *services.ReviewService
}

// NewReviewHandlers creates new review handlers
func NewReviewHandlers(reviewService *services.ReviewService) *ReviewHandlers {
	return &ReviewHandlers{reviewService: reviewService}
}

// ListReviews returns the reviews of the seller's products together
// with the summary reduced from the same fetched set.
func (h *ReviewHandlers) ListReviews(c *gin.Context) {
	sellerID := middleware.SellerID(c)

	reviews, err := h.reviewService.ListReviews(sellerID)
	if err != nil {
		log.Printf("Error listing reviews for seller %s: %v", sellerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch reviews",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"reviews": reviews,
			"summary": services.Summarize(reviews),
		},
	})
}

// ReplyRequest is the body for a seller reply
type ReplyRequest struct {
	Reply string `json:"reply"`
}

// ReplyToReview records the seller's one-time reply on a review
func (h *ReviewHandlers) ReplyToReview(c *gin.Context) {
	sellerID := middleware.SellerID(c)
	reviewID := c.Param("id")

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := h.reviewService.Reply(reviewID, sellerID, req.Reply); err != nil {
		switch {
		case errors.Is(err, services.ErrReplyRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Reply text is required",
			})
		case errors.Is(err, services.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Review not found",
			})
		case errors.Is(err, services.ErrAlreadyReplied):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "Review already has a reply",
			})
		default:
			log.Printf("Error replying to review %s: %v", reviewID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to reply to review",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reply posted",
	})
}
