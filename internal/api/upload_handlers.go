package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerhub-backend/internal/middleware"
	"sellerhub-backend/internal/services"
)

// UploadHandlers contains the product image upload handlers
type UploadHandlers struct {
	storageService *services.StorageService
}

// NewUploadHandlers creates new upload handlers
func NewUploadHandlers(storageService *services.StorageService) *UploadHandlers {
	return &UploadHandlers{storageService: storageService}
}

// UploadImages stores a batch of product images and returns their URLs
// in upload order. The first URL is treated as the cover image.
func (h *UploadHandlers) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid multipart form: " + err.Error(),
		})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No images provided",
		})
		return
	}

	urls, err := h.storageService.SaveAll(files)
	if err != nil {
		if errors.Is(err, services.ErrNotAnImage) || errors.Is(err, services.ErrFileTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		log.Printf("Error storing images for seller %s: %v", middleware.SellerID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to store images",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"urls": urls},
	})
}
