package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAndMigrate(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))

	// Migrations are idempotent.
	require.NoError(t, Migrate(db))

	tables := []string{"users", "sellers", "addresses", "products", "orders", "order_items", "returns", "reviews"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestSeed(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db))

	var sellers, products int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sellers").Scan(&sellers))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM products").Scan(&products))
	assert.Equal(t, 1, sellers)
	assert.Equal(t, 3, products)

	// Seeding again is a no-op.
	require.NoError(t, Seed(db))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sellers").Scan(&sellers))
	assert.Equal(t, 1, sellers)
}
