package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sellerhub-backend/config"
	"sellerhub-backend/database"
	"sellerhub-backend/internal/api"
	"sellerhub-backend/internal/middleware"
	"sellerhub-backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if cfg.SeedDatabase {
		if err := database.Seed(db); err != nil {
			log.Fatal("Failed to seed database:", err)
		}
	}

	// Initialize services
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	sessionService := services.NewSessionService(db, authService)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	returnService := services.NewReturnService(db)
	reviewService := services.NewReviewService(db)
	dashboardService := services.NewDashboardService(db, orderService, productService, reviewService)
	storageService := services.NewStorageService(cfg.UploadPath, cfg.PublicBaseURL, cfg.MaxUploadSize)

	// Periodically drop expired entries from the token blacklist
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			authService.CleanupExpiredTokens()
		}
	}()

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowedOrigin := ""
		if cfg.AllowAllOrigins {
			allowedOrigin = "*"
		} else {
			for _, allowed := range cfg.AllowedOrigins {
				if origin == allowed {
					allowedOrigin = origin
					break
				}
			}
		}

		if allowedOrigin != "" {
			c.Header("Access-Control-Allow-Origin", allowedOrigin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Security middleware
	securityConfig := &middleware.SecurityConfig{
		MaxRequestSize:    cfg.MaxUploadSize * 4,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   time.Duration(cfg.RateLimitWindow) * time.Second,
	}
	router.Use(middleware.SecurityMiddleware(securityConfig))

	// Initialize handlers
	authHandlers := api.NewAuthHandlers(db, sessionService)
	productHandlers := api.NewProductHandlers(productService)
	uploadHandlers := api.NewUploadHandlers(storageService)
	orderHandlers := api.NewOrderHandlers(orderService)
	returnHandlers := api.NewReturnHandlers(returnService)
	reviewHandlers := api.NewReviewHandlers(reviewService)
	dashboardHandlers := api.NewDashboardHandlers(dashboardService)

	authMiddleware := middleware.NewAuthMiddleware(sessionService)

	// Serve uploaded product images
	router.Static("/uploads", cfg.UploadPath)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimitMiddleware(20))
		{
			auth.POST("/register", authHandlers.Register)
			auth.POST("/login", authHandlers.Login)
			auth.POST("/logout", authMiddleware.SellerRequired(), authHandlers.Logout)
			auth.GET("/me", authMiddleware.SellerRequired(), authHandlers.Me)
		}

		seller := v1.Group("")
		seller.Use(authMiddleware.SellerRequired())
		{
			seller.GET("/products", productHandlers.ListProducts)
			seller.POST("/products", productHandlers.CreateProduct)
			seller.GET("/products/:id", productHandlers.GetProduct)
			seller.PUT("/products/:id", productHandlers.UpdateProduct)
			seller.DELETE("/products/:id", productHandlers.DeleteProduct)

			seller.POST("/uploads/images", uploadHandlers.UploadImages)

			seller.GET("/orders", orderHandlers.ListOrders)
			seller.GET("/orders/:id", orderHandlers.GetOrder)
			seller.PATCH("/orders/items/:id/status", orderHandlers.UpdateItemStatus)

			seller.GET("/returns", returnHandlers.ListReturns)
			seller.POST("/returns/:id/approve", returnHandlers.ApproveReturn)
			seller.POST("/returns/:id/reject", returnHandlers.RejectReturn)

			seller.GET("/reviews", reviewHandlers.ListReviews)
			seller.POST("/reviews/:id/reply", reviewHandlers.ReplyToReview)

			seller.GET("/dashboard", dashboardHandlers.GetDashboard)
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("SellerHub API server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server shutdown complete")
}
