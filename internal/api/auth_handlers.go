package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerhub-backend/internal/models"
	"sellerhub-backend/internal/services"
)

// AuthHandlers contains all authentication-related handlers
type AuthHandlers struct {
	sessionService *services.SessionService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(db *sql.DB, sessionService *services.SessionService) *AuthHandlers {
	return &AuthHandlers{sessionService: sessionService}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    *AuthData `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// AuthData represents the data in auth response
type AuthData struct {
	Seller *models.Seller `json:"seller,omitempty"`
	Token  string         `json:"token,omitempty"`
}

// Register handles seller registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req models.SellerRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AuthResponse{
			Success: false,
			Error:   "Invalid request data: " + err.Error(),
		})
		return
	}

	seller, err := h.sessionService.Register(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, AuthResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Registration successful",
		Data:    &AuthData{Seller: seller},
	})
}

// Login handles seller sign-in. A valid account that is not a seller,
// or a deactivated seller, gets a specific message and no live session.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.SellerLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AuthResponse{
			Success: false,
			Error:   "Invalid request data: " + err.Error(),
		})
		return
	}

	seller, token, err := h.sessionService.SignIn(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotASeller):
			c.JSON(http.StatusForbidden, AuthResponse{
				Success: false,
				Error:   "This account is not registered as a seller",
			})
		case errors.Is(err, services.ErrAccountInactive):
			c.JSON(http.StatusForbidden, AuthResponse{
				Success: false,
				Error:   "Your seller account is inactive. Please contact support.",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, AuthResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
		default:
			log.Printf("Error signing in %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, AuthResponse{
				Success: false,
				Error:   "Failed to sign in",
			})
		}
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Data:    &AuthData{Seller: seller, Token: token},
	})
}

// Logout invalidates the presented token. Logging out without a token
// still succeeds.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token != "" {
		h.sessionService.SignOut(token)
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Logout successful",
	})
}

// Me returns the authenticated seller's profile.
func (h *AuthHandlers) Me(c *gin.Context) {
	seller, exists := c.Get("seller")
	if !exists {
		c.JSON(http.StatusUnauthorized, AuthResponse{
			Success: false,
			Error:   "Not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    seller,
	})
}
