package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts a demo seller with a small catalog and a couple of
// multi-vendor orders. Intended for development only; it is a no-op
// when a seller already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sellers").Scan(&count); err != nil {
		return fmt.Errorf("failed to check sellers: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	userID := uuid.New().String()
	if _, err := db.Exec(
		"INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		userID, "demo@sellerhub.dev", string(hash), now, now,
	); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	sellerID := uuid.New().String()
	if _, err := db.Exec(`
		INSERT INTO sellers (id, user_id, store_name, owner_name, email, phone, is_active, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, 1, ?, ?)`,
		sellerID, userID, "Demo Store", "Demo Seller", "demo@sellerhub.dev", "+10000000000", now, now,
	); err != nil {
		return fmt.Errorf("failed to seed seller: %w", err)
	}

	products := []struct {
		name  string
		brand string
		mrp   float64
		disc  float64
	}{
		{"Cotton Crew Neck T-Shirt", "Demo Basics", 1999, 35},
		{"Slim Fit Denim Jeans", "Demo Basics", 3499, 20},
		{"Canvas Sneakers", "Demo Footwear", 2799, 25},
	}

	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		id := uuid.New().String()
		productIDs = append(productIDs, id)
		price := float64(int64(p.mrp*(1-p.disc/100) + 0.5))
		if _, err := db.Exec(`
			INSERT INTO products (id, seller_id, name, brand, description, category, price, mrp, discount_percent,
				stock, is_active, sizes, colors, highlights, attributes, images, created_at, updated_at)
			VALUES (?, ?, ?, ?, '', 'apparel', ?, ?, ?, 50, 1, '["S","M","L"]', '[]', '[]', '{}', '[]', ?, ?)`,
			id, sellerID, p.name, p.brand, price, p.mrp, p.disc, now, now,
		); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
	}

	orderID := uuid.New().String()
	if _, err := db.Exec(`
		INSERT INTO orders (id, order_number, buyer_id, status, delivery_name, delivery_phone,
			address_line_1, address_line_2, city, state, postal_code,
			subtotal, discount, delivery_charge, total_amount, created_at, updated_at)
		VALUES (?, 'ORD-1001', ?, 'pending', 'Demo Buyer', '+10000000001',
			'1 Demo Street', '', 'Demoville', 'DS', '00001', 1299, 0, 49, 1348, ?, ?)`,
		orderID, uuid.New().String(), now, now,
	); err != nil {
		return fmt.Errorf("failed to seed order: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO order_items (id, order_id, product_id, product_name, brand, image_url, variant,
			quantity, unit_price, total_price, status, created_at)
		VALUES (?, ?, ?, 'Cotton Crew Neck T-Shirt', 'Demo Basics', '', 'M',
			1, 1299, 1299, 'pending', ?)`,
		uuid.New().String(), orderID, productIDs[0], now,
	); err != nil {
		return fmt.Errorf("failed to seed order item: %w", err)
	}

	log.Println("Seeded demo seller data (demo@sellerhub.dev / demo1234)")
	return nil
}
