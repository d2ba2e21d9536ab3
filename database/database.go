package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Initialize creates and returns a database connection
func Initialize(databaseURL string) (*sql.DB, error) {
	// Add SQLite-specific parameters for better concurrent access
	if !strings.Contains(databaseURL, "?") && databaseURL != ":memory:" {
		databaseURL = databaseURL + "?_busy_timeout=30000&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=1"
	}

	db, err := sql.Open("sqlite3", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 30000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("Warning: failed to set pragma %s: %v", pragma, err)
		}
	}

	return db, nil
}

// Migrate runs database migrations
func Migrate(db *sql.DB) error {
	migrations := []string{
		createUsersTable,
		createSellersTable,
		createAddressesTable,
		createProductsTable,
		createOrdersTable,
		createOrderItemsTable,
		createReturnsTable,
		createReviewsTable,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

const createSellersTable = `
CREATE TABLE IF NOT EXISTS sellers (
	id TEXT PRIMARY KEY,
	user_id TEXT UNIQUE NOT NULL,
	store_name TEXT NOT NULL,
	owner_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT 1,
	is_verified BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
)`

const createAddressesTable = `
CREATE TABLE IF NOT EXISTS addresses (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	address_line_1 TEXT NOT NULL,
	address_line_2 TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	postal_code TEXT NOT NULL DEFAULT '',
	is_default BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
)`

const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	seller_id TEXT,
	name TEXT NOT NULL,
	brand TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL DEFAULT 0,
	mrp REAL,
	discount_percent REAL NOT NULL DEFAULT 0,
	stock INTEGER NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	sizes TEXT NOT NULL DEFAULT '[]',
	colors TEXT NOT NULL DEFAULT '[]',
	highlights TEXT NOT NULL DEFAULT '[]',
	attributes TEXT NOT NULL DEFAULT '{}',
	images TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (seller_id) REFERENCES sellers(id) ON DELETE SET NULL
)`

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	order_number TEXT UNIQUE NOT NULL,
	buyer_id TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	delivery_name TEXT NOT NULL,
	delivery_phone TEXT NOT NULL DEFAULT '',
	address_line_1 TEXT NOT NULL,
	address_line_2 TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	postal_code TEXT NOT NULL DEFAULT '',
	subtotal REAL NOT NULL DEFAULT 0,
	discount REAL NOT NULL DEFAULT 0,
	delivery_charge REAL NOT NULL DEFAULT 0,
	total_amount REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

const createOrderItemsTable = `
CREATE TABLE IF NOT EXISTS order_items (
	id TEXT PRIMARY KEY,
	order_id TEXT NOT NULL,
	product_id TEXT,
	product_name TEXT NOT NULL,
	brand TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	variant TEXT NOT NULL DEFAULT '',
	quantity INTEGER NOT NULL DEFAULT 1,
	unit_price REAL NOT NULL DEFAULT 0,
	total_price REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE SET NULL
)`

const createReturnsTable = `
CREATE TABLE IF NOT EXISTS returns (
	id TEXT PRIMARY KEY,
	order_item_id TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	rejection_reason TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (order_item_id) REFERENCES order_items(id) ON DELETE CASCADE
)`

const createReviewsTable = `
CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	product_id TEXT NOT NULL,
	buyer_id TEXT NOT NULL,
	rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
	comment TEXT,
	images TEXT NOT NULL DEFAULT '[]',
	seller_reply TEXT,
	replied_at DATETIME,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
)`

// createIndexes adds indexes for the seller-scoped read paths.
func createIndexes(db *sql.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_sellers_user_id ON sellers(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_seller_id ON products(seller_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_returns_order_item_id ON returns(order_item_id)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_id ON reviews(product_id)",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return err
		}
	}
	return nil
}
