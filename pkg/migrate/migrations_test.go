package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tontonphone/storefront-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestCartMigrationEnforcesOneLinePerProduct(t *testing.T) {
	content := readMigration(t, "*_create_cart_and_wishlist.sql")

	checks := []string{
		"CREATE TABLE cart_items",
		"CREATE UNIQUE INDEX cart_items_user_product_key ON cart_items (user_id, product_id)",
		"CHECK (quantity >= 1)",
		"CREATE TABLE wishlist_items",
		"CREATE UNIQUE INDEX wishlist_items_user_product_key ON wishlist_items (user_id, product_id)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationSnapshotsLineItems(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE orders",
		"CREATE UNIQUE INDEX orders_number_key ON orders (number)",
		"CREATE TABLE order_items",
		"unit_price_dzd integer NOT NULL",
		"line_total_dzd integer NOT NULL",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
