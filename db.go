package main

import (
	"log"
	"os"
	"strings"

	"receiptscan/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Roles first so the users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Store{}); err != nil {
			log.Printf("migration warning (stores): %v", err)
		}
		if err := db.AutoMigrate(&models.CatalogItem{}); err != nil {
			log.Printf("migration warning (catalog_items): %v", err)
		}
	}
	seedDB()
}

func seedDB() {
	// Ensure master roles exist
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}

	seedStores()
}

// seedStores loads a small reference catalog so receipt verification has
// something to match against on a fresh database.
func seedStores() {
	seeds := []struct {
		name    string
		address string
		items   []string
	}{
		{"Loshusan Supermarket", "New Kingston", []string{"GRACE VIENNA SAUSAGE", "BANANA RIPE", "HARD DOUGH BREAD"}},
		{"Ardenne Pharmacy", "Half Way Tree, Kingston 10", []string{"Pepsi 591ml", "Panadol Extra"}},
		{"ABC SUPERMARKET", "123 Main St", []string{"Milk", "Bread"}},
	}
	for _, s := range seeds {
		var store models.Store
		if err := db.Where("name = ?", s.name).First(&store).Error; err != nil {
			store = models.Store{Name: s.name, Address: s.address}
			if err := db.Create(&store).Error; err != nil {
				log.Printf("failed to seed store %s: %v", s.name, err)
				continue
			}
		}
		for _, d := range s.items {
			var cnt int64
			db.Model(&models.CatalogItem{}).Where("store_id = ? AND description = ?", store.ID, d).Count(&cnt)
			if cnt == 0 {
				db.Create(&models.CatalogItem{StoreID: store.ID, Description: d})
			}
		}
	}
}
