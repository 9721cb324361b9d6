package wishlist

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  brand TEXT NOT NULL,
  category TEXT NOT NULL,
  price_dzd INTEGER NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT,
  specs TEXT,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`
	wishlistItems := `
CREATE TABLE IF NOT EXISTS wishlist_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(wishlistItems).Error)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id, name string, price int) {
	t.Helper()

	err := db.Exec(
		`INSERT INTO products (id, name, brand, category, price_dzd) VALUES (?, ?, 'TonTon', 'smartphones', ?)`,
		id, name, price,
	).Error
	require.NoError(t, err)
}

func TestRepositoryAddIsIdempotent(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedProduct(t, db, "p1", "Phone One", 50000)

	require.NoError(t, repo.AddItem(ctx, userID, "p1"))
	require.NoError(t, repo.AddItem(ctx, userID, "p1"))

	var count int64
	require.NoError(t, db.Table("wishlist_items").Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	has, err := repo.Has(ctx, userID, "p1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRepositoryRemoveUnknownIsNoOp(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.RemoveItem(ctx, userID, "missing"))

	has, err := repo.Has(ctx, userID, "missing")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRepositoryListJoinsProductsOldestFirst(t *testing.T) {
	db := setupWishlistTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherUser := uuid.New()
	seedProduct(t, db, "p1", "Phone One", 50000)
	seedProduct(t, db, "p2", "Phone Two", 80000)

	// explicit timestamps so the ordering is unambiguous
	insert := `INSERT INTO wishlist_items (id, user_id, product_id, created_at) VALUES (?, ?, ?, ?)`
	require.NoError(t, db.Exec(insert, uuid.New(), userID, "p2", "2026-01-02 10:00:00").Error)
	require.NoError(t, db.Exec(insert, uuid.New(), userID, "p1", "2026-01-01 10:00:00").Error)
	require.NoError(t, db.Exec(insert, uuid.New(), otherUser, "p1", "2026-01-01 09:00:00").Error)

	rows, err := repo.ListWithProducts(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "p1", rows[0].ProductID)
	assert.Equal(t, "Phone One", rows[0].Name)
	assert.Equal(t, 50000, rows[0].PriceDZD)
	assert.Equal(t, "p2", rows[1].ProductID)
}
