package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerhub-backend/internal/middleware"
	"sellerhub-backend/internal/models"
	"sellerhub-backend/internal/services"
	"sellerhub-backend/internal/utils"
)

// ProductHandlers contains the seller catalog handlers
type ProductHandlers struct {
	productService *services.ProductService
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(productService *services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// ListProducts returns the seller's own catalog, newest first
func (h *ProductHandlers) ListProducts(c *gin.Context) {
	sellerID := middleware.SellerID(c)

	products, err := h.productService.ListOwnProducts(sellerID)
	if err != nil {
		log.Printf("Error listing products for seller %s: %v", sellerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProduct returns one of the seller's products by id
func (h *ProductHandlers) GetProduct(c *gin.Context) {
	sellerID := middleware.SellerID(c)
	productID := c.Param("id")

	product, err := h.productService.GetProduct(productID, sellerID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
			return
		}
		log.Printf("Error getting product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// CreateProduct adds a product to the seller's catalog
func (h *ProductHandlers) CreateProduct(c *gin.Context) {
	sellerID := middleware.SellerID(c)

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := utils.ValidateStruct(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	product, err := h.productService.CreateProduct(&input, sellerID)
	if err != nil {
		log.Printf("Error creating product for seller %s: %v", sellerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create product",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct replaces an owned product's editable fields
func (h *ProductHandlers) UpdateProduct(c *gin.Context) {
	sellerID := middleware.SellerID(c)
	productID := c.Param("id")

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := utils.ValidateStruct(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	product, err := h.productService.UpdateProduct(productID, sellerID, &input)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
			return
		}
		log.Printf("Error updating product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct removes one of the seller's products
func (h *ProductHandlers) DeleteProduct(c *gin.Context) {
	sellerID := middleware.SellerID(c)
	productID := c.Param("id")

	if err := h.productService.DeleteProduct(productID, sellerID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
			return
		}
		log.Printf("Error deleting product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted",
	})
}
