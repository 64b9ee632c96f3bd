package cmd

import (
	"fmt"
	"log"

	"github.com/commerceops/backoffice/internal/rbac"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"order_items", "orders", "products", "customers", "brands", "categories", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		cost := cfg.Security.BCryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cost)

		accounts := []struct {
			Email string
			Name  string
			Role  rbac.Role
		}{
			{"admin@backoffice.dev", "Ava Admin", rbac.RoleAdmin},
			{"manager@backoffice.dev", "Morgan Manager", rbac.RoleManager},
			{"staff@backoffice.dev", "Sam Staff", rbac.RoleStaff},
		}

		for _, a := range accounts {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", a.Email).Row().Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", a.Email)
				continue
			}
			if err := db.Exec(
				"INSERT INTO users (email, name, role, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
				a.Email, a.Name, string(a.Role), string(hash),
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", a.Email, err)
			}
			fmt.Printf("Seeded %s user: %s\n", a.Role, a.Email)
		}

		brands := []string{"Acme", "Northwind", "Globex", "Initech"}
		for _, name := range brands {
			seedLookupRow(db, "brands", name, "INSERT INTO brands (name, created_at, updated_at) VALUES (?, now(), now())")
		}

		categories := []struct {
			Name string
			Desc string
		}{
			{"Electronics", "Phones, audio and accessories"},
			{"Apparel", "Clothing and footwear"},
			{"Home", "Kitchen and furniture"},
			{"Outdoors", "Camping and sports gear"},
		}
		for _, c := range categories {
			var exists int
			if err := db.Raw("SELECT 1 FROM categories WHERE name = ?", c.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO categories (name, description, created_at, updated_at) VALUES (?, ?, now(), now())", c.Name, c.Desc).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Printf("Seeded category: %s\n", c.Name)
		}

		products := []struct {
			Name     string
			SKU      string
			Price    float64
			Stock    int
			Category string
			Brand    string
		}{
			{"Wireless Earbuds", "ELEC-0001", 59.90, 120, "Electronics", "Acme"},
			{"Bluetooth Speaker", "ELEC-0002", 89.00, 8, "Electronics", "Globex"},
			{"Trail Running Shoes", "APP-0001", 129.50, 42, "Apparel", "Northwind"},
			{"Cotton Hoodie", "APP-0002", 49.00, 0, "Apparel", "Northwind"},
			{"French Press", "HOME-0001", 34.75, 66, "Home", "Initech"},
			{"Camping Lantern", "OUT-0001", 24.30, 5, "Outdoors", "Acme"},
		}
		for _, p := range products {
			var exists int
			if err := db.Raw("SELECT 1 FROM products WHERE sku = ?", p.SKU).Row().Scan(&exists); err == nil {
				continue
			}
			var categoryID, brandID int64
			if err := db.Raw("SELECT id FROM categories WHERE name = ?", p.Category).Row().Scan(&categoryID); err != nil {
				log.Fatalf("category %s not found: %v", p.Category, err)
			}
			if err := db.Raw("SELECT id FROM brands WHERE name = ?", p.Brand).Row().Scan(&brandID); err != nil {
				log.Fatalf("brand %s not found: %v", p.Brand, err)
			}
			if err := db.Exec(
				"INSERT INTO products (name, sku, price, stock, category_id, brand_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, now(), now())",
				p.Name, p.SKU, p.Price, p.Stock, categoryID, brandID,
			).Error; err != nil {
				log.Fatalf("failed to insert product %s: %v", p.SKU, err)
			}
			fmt.Printf("Seeded product: %s\n", p.SKU)
		}

		customers := []struct {
			Name  string
			Email string
		}{
			{"Dewi Lestari", "dewi@example.com"},
			{"Budi Santoso", "budi@example.com"},
			{"Grace Chen", "grace@example.com"},
		}
		for _, c := range customers {
			var exists int
			if err := db.Raw("SELECT 1 FROM customers WHERE email = ?", c.Email).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO customers (name, email, created_at, updated_at) VALUES (?, ?, now(), now())", c.Name, c.Email).Error; err != nil {
				log.Fatalf("failed to insert customer %s: %v", c.Email, err)
			}
			fmt.Printf("Seeded customer: %s\n", c.Email)
		}

		seedOrders(db)

		fmt.Println("Seeding complete")
	},
}

func seedLookupRow(db *gorm.DB, table, name, insertSQL string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM "+table+" WHERE name = ?", name).Row().Scan(&exists); err == nil {
		return
	}
	if err := db.Exec(insertSQL, name).Error; err != nil {
		log.Fatalf("failed to insert into %s: %v", table, err)
	}
	fmt.Printf("Seeded %s: %s\n", table, name)
}

func seedOrders(db *gorm.DB) {
	var orderCount int64
	if err := db.Raw("SELECT COUNT(*) FROM orders").Row().Scan(&orderCount); err != nil || orderCount > 0 {
		return
	}

	orders := []struct {
		Number        string
		CustomerEmail string
		Status        string
		Lines         []struct {
			SKU string
			Qty int
		}
	}{
		{"ORD-SEED001", "dewi@example.com", "pending", []struct {
			SKU string
			Qty int
		}{{"ELEC-0001", 2}, {"HOME-0001", 1}}},
		{"ORD-SEED002", "budi@example.com", "paid", []struct {
			SKU string
			Qty int
		}{{"APP-0001", 1}}},
		{"ORD-SEED003", "grace@example.com", "delivered", []struct {
			SKU string
			Qty int
		}{{"OUT-0001", 3}}},
	}

	for _, o := range orders {
		var customerID int64
		if err := db.Raw("SELECT id FROM customers WHERE email = ?", o.CustomerEmail).Row().Scan(&customerID); err != nil {
			log.Fatalf("customer %s not found: %v", o.CustomerEmail, err)
		}

		total := 0.0
		type line struct {
			productID int64
			qty       int
			price     float64
		}
		var lines []line
		for _, l := range o.Lines {
			var productID int64
			var price float64
			if err := db.Raw("SELECT id, price FROM products WHERE sku = ?", l.SKU).Row().Scan(&productID, &price); err != nil {
				log.Fatalf("product %s not found: %v", l.SKU, err)
			}
			lines = append(lines, line{productID, l.Qty, price})
			total += price * float64(l.Qty)
		}

		if err := db.Exec(
			"INSERT INTO orders (number, customer_id, status, total, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
			o.Number, customerID, o.Status, total,
		).Error; err != nil {
			log.Fatalf("failed to insert order %s: %v", o.Number, err)
		}

		var orderID int64
		if err := db.Raw("SELECT id FROM orders WHERE number = ?", o.Number).Row().Scan(&orderID); err != nil {
			log.Fatalf("failed to lookup order %s: %v", o.Number, err)
		}
		for _, l := range lines {
			if err := db.Exec(
				"INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)",
				orderID, l.productID, l.qty, l.price,
			).Error; err != nil {
				log.Fatalf("failed to insert order item for %s: %v", o.Number, err)
			}
		}
		fmt.Printf("Seeded order: %s\n", o.Number)
	}
}
