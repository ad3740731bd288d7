// Seeds the catalog database with the demo product set. Safe to rerun;
// existing rows are updated in place.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rl1809/luxestore/internal/adapter/storage"
	"github.com/rl1809/luxestore/internal/core/domain"
)

// Prices are PKR minor units.
var products = []domain.Product{
	{ID: 1, Name: "Premium Wireless Headphones", Category: "electronics", Price: 89999, Image: "https://cdn.pixabay.com/photo/2016/11/29/03/53/headphones-1867121_1280.jpg", Description: "High-quality wireless headphones with premium sound and noise cancellation.", Stock: 15},
	{ID: 2, Name: "Wireless Earbuds", Category: "electronics", Price: 6999, Image: "https://cdn.pixabay.com/photo/2020/05/14/09/54/earphones-5193970_1280.jpg", Description: "Elegant smartwatch with advanced health monitoring and premium materials.", Stock: 8},
	{ID: 3, Name: "T-Shirt", Category: "fashion", Price: 3999, Image: "https://cdn.pixabay.com/photo/2024/04/29/04/21/tshirt-8726716_1280.jpg", Description: "Exquisite designer handbag crafted from premium leather with elegant styling.", Stock: 12},
	{ID: 4, Name: "Premium Coffee Machine", Category: "home", Price: 45999, Image: "https://cdn.pixabay.com/photo/2016/12/05/22/23/coffee-1885073_1280.jpg", Description: "Professional-grade coffee machine for the perfect brew every time.", Stock: 6},
	{ID: 5, Name: "Premium Sunglasses", Category: "accessories", Price: 2999, Image: "https://cdn.pixabay.com/photo/2017/07/13/14/05/wood-sunglasses-2500491_1280.jpg", Description: "Exclusive fragrance collection with sophisticated scents.", Stock: 20},
	{ID: 6, Name: "Ornamental Flowerpot", Category: "home", Price: 26999, Image: "https://cdn.pixabay.com/photo/2020/07/22/19/45/ornamental-flowerpot-5429622_1280.jpg", Description: "Handcrafted wooden bowl made from sustainable materials.", Stock: 25},
	{ID: 7, Name: "Luxury Watch", Category: "accessories", Price: 104999, Image: "https://cdn.pixabay.com/photo/2013/07/11/15/30/male-watch-144648_1280.jpg", Description: "Designer sunglasses with UV protection and premium frames.", Stock: 18},
	{ID: 8, Name: "Gold Bracelet", Category: "accessories", Price: 59999, Image: "https://cdn.pixabay.com/photo/2013/07/11/15/22/bracelet-144646_1280.jpg", Description: "Premium organic skincare collection for radiant skin.", Stock: 14},
	{ID: 9, Name: "Bluetooth Speaker", Category: "electronics", Price: 38999, Image: "https://cdn.pixabay.com/photo/2014/04/09/08/16/speaker-319842_1280.jpg", Description: "High-end digital camera for professional photography.", Stock: 5},
	{ID: 10, Name: "Jacket", Category: "fashion", Price: 8999, Image: "https://cdn.pixabay.com/photo/2017/10/29/13/17/jacket-2899729_1280.png", Description: "Limited edition designer sneakers with premium comfort.", Stock: 22},
	{ID: 11, Name: "Luxury Tea Set", Category: "home", Price: 34999, Image: "https://cdn.pixabay.com/photo/2021/11/26/00/46/tea-6824833_1280.jpg", Description: "Elegant porcelain tea set perfect for special occasions.", Stock: 16},
	{ID: 12, Name: "Perfume", Category: "accessories", Price: 6999, Image: "https://cdn.pixabay.com/photo/2015/11/14/04/09/perfume-1042712_1280.jpg", Description: "Handcrafted jewelry box with velvet interior and elegant design.", Stock: 11},
	{ID: 13, Name: "Power Bank", Category: "electronics", Price: 8999, Image: "https://cdn.pixabay.com/photo/2015/03/27/14/44/promotional-products-694794_1280.jpg", Description: "Advanced smart home assistant with voice control and AI features.", Stock: 30},
	{ID: 14, Name: "Trouser", Category: "fashion", Price: 1999, Image: "https://cdn.pixabay.com/photo/2017/08/27/05/33/trousers-2685231_1280.jpg", Description: "Premium designer jacket with modern styling and superior comfort.", Stock: 9},
}

func main() {
	ctx := context.Background()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/luxestore?parseTime=true"
	}
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./internal/adapter/storage/migrations"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}

	catalog := storage.NewMySQLCatalog(db)
	if err := catalog.RunMigrations(migrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	for _, p := range products {
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (id, name, category, price, image, description, stock)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				name = VALUES(name), category = VALUES(category),
				price = VALUES(price), image = VALUES(image),
				description = VALUES(description), stock = VALUES(stock)`,
			p.ID, p.Name, p.Category, p.Price, p.Image, p.Description, p.Stock,
		)
		if err != nil {
			log.Fatalf("failed to seed product %d: %v", p.ID, err)
		}
	}

	log.Printf("seeded %d products", len(products))
}
