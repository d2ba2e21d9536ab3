package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sellerhub-backend/database"
	"sellerhub-backend/internal/middleware"
	"sellerhub-backend/internal/services"
)

// newTestRouter wires the full seller-gated route tree against an
// in-memory database.
func newTestRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	authService := services.NewAuthService("test-secret", 3600)
	sessionService := services.NewSessionService(db, authService)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	returnService := services.NewReturnService(db)
	reviewService := services.NewReviewService(db)
	dashboardService := services.NewDashboardService(db, orderService, productService, reviewService)

	authHandlers := NewAuthHandlers(db, sessionService)
	productHandlers := NewProductHandlers(productService)
	orderHandlers := NewOrderHandlers(orderService)
	returnHandlers := NewReturnHandlers(returnService)
	reviewHandlers := NewReviewHandlers(reviewService)
	dashboardHandlers := NewDashboardHandlers(dashboardService)

	authMiddleware := middleware.NewAuthMiddleware(sessionService)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", authHandlers.Register)
		v1.POST("/auth/login", authHandlers.Login)
		v1.POST("/auth/logout", authMiddleware.SellerRequired(), authHandlers.Logout)
		v1.GET("/auth/me", authMiddleware.SellerRequired(), authHandlers.Me)

		seller := v1.Group("")
		seller.Use(authMiddleware.SellerRequired())
		{
			seller.GET("/products", productHandlers.ListProducts)
			seller.POST("/products", productHandlers.CreateProduct)
			seller.GET("/orders", orderHandlers.ListOrders)
			seller.GET("/returns", returnHandlers.ListReturns)
			seller.POST("/returns/:id/reject", returnHandlers.RejectReturn)
			seller.POST("/reviews/:id/reply", reviewHandlers.ReplyToReview)
			seller.GET("/dashboard", dashboardHandlers.GetDashboard)
		}
	}
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":     "shop@example.com",
		"password":  "password123",
		"storeName": "Test Store",
		"ownerName": "Test Owner",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "shop@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestAuthFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router)

	t.Run("me returns the seller", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Test Store")
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLoginRejections(t *testing.T) {
	t.Run("non-seller account gets 403", func(t *testing.T) {
		router, db := newTestRouter(t)

		// A bare user row with no seller attached.
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		require.NoError(t, err)
		now := time.Now()
		_, err = db.Exec(
			"INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			uuid.New().String(), "buyer@example.com", string(hash), now, now,
		)
		require.NoError(t, err)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "buyer@example.com",
			"password": "password",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "not registered as a seller")
	})

	t.Run("deactivated seller gets 403 and cannot reach seller routes", func(t *testing.T) {
		router, db := newTestRouter(t)
		registerAndLogin(t, router)

		_, err := db.Exec("UPDATE sellers SET is_active = 0")
		require.NoError(t, err)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "shop@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "inactive")
	})

	t.Run("bad password gets 401", func(t *testing.T) {
		router, _ := newTestRouter(t)
		registerAndLogin(t, router)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "shop@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSellerRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/products", "/api/v1/orders", "/api/v1/returns", "/api/v1/dashboard"} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router)

	t.Run("create derives the selling price", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/products", token, gin.H{
			"name":            "Running Sneakers",
			"mrp":             1999,
			"discountPercent": 35,
			"stock":           10,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			Data struct {
				Price float64 `json:"price"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1299.0, resp.Data.Price)
	})

	t.Run("invalid payload gets 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/products", token, gin.H{"name": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list shows own catalog", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/products", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Running Sneakers")
	})
}

func TestRejectReturnEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	token := registerAndLogin(t, router)

	// Seed a product, an order item for it, and a pending return.
	var sellerID string
	require.NoError(t, db.QueryRow("SELECT id FROM sellers").Scan(&sellerID))

	now := time.Now()
	productID := uuid.New().String()
	_, err := db.Exec(
		"INSERT INTO products (id, seller_id, name, price, created_at, updated_at) VALUES (?, ?, 'Sneakers', 1299, ?, ?)",
		productID, sellerID, now, now,
	)
	require.NoError(t, err)

	orderID := uuid.New().String()
	_, err = db.Exec(`
		INSERT INTO orders (id, order_number, buyer_id, status, delivery_name, address_line_1, total_amount, created_at, updated_at)
		VALUES (?, 'ORD-5001', 'buyer-1', 'delivered', 'Asha Patel', '1 Main St', 1299, ?, ?)`,
		orderID, now, now,
	)
	require.NoError(t, err)

	itemID := uuid.New().String()
	_, err = db.Exec(`
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, total_price, created_at)
		VALUES (?, ?, ?, 'Sneakers', 1, 1299, 1299, ?)`,
		itemID, orderID, productID, now,
	)
	require.NoError(t, err)

	returnID := uuid.New().String()
	_, err = db.Exec(
		"INSERT INTO returns (id, order_item_id, reason, status, created_at, updated_at) VALUES (?, ?, 'Damaged', 'pending', ?, ?)",
		returnID, itemID, now, now,
	)
	require.NoError(t, err)

	t.Run("blank reason gets 400 and no write", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/reject", token, gin.H{"reason": "  "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var status string
		require.NoError(t, db.QueryRow("SELECT status FROM returns WHERE id = ?", returnID).Scan(&status))
		assert.Equal(t, "pending", status)
	})

	t.Run("reject with reason succeeds", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/reject", token, gin.H{"reason": "Outside return window"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown return gets 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/returns/nope/reject", token, gin.H{"reason": "whatever"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDashboardEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "totalProducts")
	assert.Contains(t, rec.Body.String(), "topProducts")
}
