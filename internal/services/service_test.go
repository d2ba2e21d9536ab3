package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sellerhub-backend/database"
)

// newTestDB returns an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func insertUser(t *testing.T, db *sql.DB, email, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	id := uuid.New().String()
	now := time.Now()
	_, err = db.Exec(
		"INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		id, email, string(hash), now, now,
	)
	require.NoError(t, err)
	return id
}

func insertSeller(t *testing.T, db *sql.DB, userID, storeName string, active bool) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	_, err := db.Exec(`
		INSERT INTO sellers (id, user_id, store_name, owner_name, email, phone, is_active, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, '', ?, 1, ?, ?)`,
		id, userID, storeName, "Owner of "+storeName, storeName+"@example.com", active, now, now,
	)
	require.NoError(t, err)
	return id
}

func insertProduct(t *testing.T, db *sql.DB, sellerID, name string, price float64) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	_, err := db.Exec(`
		INSERT INTO products (id, seller_id, name, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, sellerID, name, price, now, now,
	)
	require.NoError(t, err)
	return id
}

func insertOrder(t *testing.T, db *sql.DB, orderNumber, deliveryName, status string, total float64, createdAt time.Time) string {
	t.Helper()
	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO orders (id, order_number, buyer_id, status, delivery_name, address_line_1, total_amount, created_at, updated_at)
		VALUES (?, ?, 'buyer-1', ?, ?, '1 Main St', ?, ?, ?)`,
		id, orderNumber, status, deliveryName, total, createdAt, createdAt,
	)
	require.NoError(t, err)
	return id
}

func insertOrderItem(t *testing.T, db *sql.DB, orderID string, productID *string, productName string, quantity int, totalPrice float64) string {
	t.Helper()
	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, total_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, orderID, productID, productName, quantity, totalPrice/float64(quantity), totalPrice, time.Now(),
	)
	require.NoError(t, err)
	return id
}

func insertReturn(t *testing.T, db *sql.DB, orderItemID, status string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	_, err := db.Exec(`
		INSERT INTO returns (id, order_item_id, reason, status, created_at, updated_at)
		VALUES (?, ?, 'Item damaged', ?, ?, ?)`,
		id, orderItemID, status, now, now,
	)
	require.NoError(t, err)
	return id
}

func insertReview(t *testing.T, db *sql.DB, productID string, rating int, reply *string) string {
	t.Helper()
	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO reviews (id, product_id, buyer_id, rating, comment, seller_reply, created_at)
		VALUES (?, ?, 'buyer-1', ?, 'some comment', ?, ?)`,
		id, productID, rating, reply, time.Now(),
	)
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }
