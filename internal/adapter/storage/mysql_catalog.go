package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/rl1809/luxestore/internal/core/domain"
)

// MySQLCatalog is the external product catalog, read-only to the
// storefront core. The seed command owns writes.
type MySQLCatalog struct {
	db *sql.DB
}

func NewMySQLCatalog(db *sql.DB) *MySQLCatalog {
	return &MySQLCatalog{db: db}
}

// GetProduct returns nil when no product has the given id.
func (c *MySQLCatalog) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	err := c.db.QueryRowContext(ctx, `
		SELECT id, name, category, price, image, description, stock
		FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Image, &p.Description, &p.Stock)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product %d: %w", id, err)
	}
	return &p, nil
}

// RunMigrations brings the catalog schema up to date from the
// migration files under dir.
func (c *MySQLCatalog) RunMigrations(dir string) error {
	driver, err := migratemysql.WithInstance(c.db, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "mysql", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
