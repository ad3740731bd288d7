package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/luxestore?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	return db
}

func TestGetProduct(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	catalog := NewMySQLCatalog(db)

	_, err := db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, price, image, description, stock)
		VALUES (9001, 'Test Lamp', 'home', 2599, '', 'A test lamp.', 4)
		ON DUPLICATE KEY UPDATE name = 'Test Lamp', category = 'home',
			price = 2599, description = 'A test lamp.', stock = 4`)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	product, err := catalog.GetProduct(ctx, 9001)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if product == nil {
		t.Fatal("expected product, got nil")
	}
	if product.Name != "Test Lamp" || product.Price != 2599 || product.Stock != 4 {
		t.Errorf("unexpected product: %+v", product)
	}

	db.ExecContext(ctx, `DELETE FROM products WHERE id = 9001`)
}

func TestGetProduct_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	catalog := NewMySQLCatalog(db)

	product, err := catalog.GetProduct(context.Background(), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product != nil {
		t.Errorf("expected nil for unknown id, got %+v", product)
	}
}
