package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nmoreno/bazaar-backend/pkg/migrate"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestUsersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_users.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)",
		"is_vendor     BOOLEAN NOT NULL DEFAULT FALSE",
		"is_buyer      BOOLEAN NOT NULL DEFAULT FALSE",
		"DROP TABLE IF EXISTS users",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCartItemsMigrationEnforcesOneRowPerPair(t *testing.T) {
	content := readMigration(t, "*_create_cart_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS cart_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_user_product ON cart_items (user_id, product_id)",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"DROP TABLE IF EXISTS cart_items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestReviewsMigrationEnforcesOneReviewPerPair(t *testing.T) {
	content := readMigration(t, "*_create_reviews.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS reviews",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_user_product ON reviews (user_id, product_id)",
		"CHECK (rating >= 1 AND rating <= 5)",
		"is_verified BOOLEAN NOT NULL DEFAULT FALSE",
		"DROP TABLE IF EXISTS reviews",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationCascadesFromShops(t *testing.T) {
	content := readMigration(t, "*_create_shops_and_products.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS shops",
		"CREATE TABLE IF NOT EXISTS products",
		"FOREIGN KEY (shop_id) REFERENCES shops(id) ON DELETE CASCADE",
		"price       NUMERIC(10,2) NOT NULL",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCreateSQLMigrationProducesValidFile(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Coupon Codes!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_coupon_codes.sql") {
		t.Fatalf("unexpected sanitized filename: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read created migration: %v", err)
	}
	for _, sub := range []string{"-- +goose Up", "-- +goose Down"} {
		if !strings.Contains(string(content), sub) {
			t.Errorf("missing goose header %q", sub)
		}
	}

	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}

func TestValidateDirRejectsBadFilenames(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "add_coupons.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected error for filename without a version prefix")
	}
}

func TestValidateDirRejectsMissingGooseHeaders(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "20250101000000_add_coupons.sql")
	if err := os.WriteFile(bad, []byte("CREATE TABLE coupons (id TEXT);\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected error for migration without goose headers")
	}
}
