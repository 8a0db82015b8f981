package db

import (
	"log"
	"os"

	"mekanlist/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=mekanlist port=5432 sslmode=disable TimeZone=Europe/Istanbul"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique-constraint races (externalId, user+target vote) are handled
		// by checking for gorm.ErrDuplicatedKey, so translation must be on.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedTaxonomies(DB)
}

// Migrate runs AutoMigrate for every entity. Split out so tests can run the
// same schema against their own connection.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Place{},
		&models.Collection{},
		&models.CollectionPlace{},
		&models.Vote{},
	)
}

func seedTaxonomies(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Category{}).Count(&count)
	if count == 0 {
		categories := []models.Category{
			{Slug: "yemek", NameTR: "Yemek", NameEN: "Food", Icon: "🍽️", DisplayOrder: 1},
			{Slug: "kafe", NameTR: "Kafe", NameEN: "Cafe", Icon: "☕", DisplayOrder: 2},
			{Slug: "kebap", NameTR: "Kebap", NameEN: "Kebab", Icon: "🍖", DisplayOrder: 3},
			{Slug: "tatli", NameTR: "Tatlı", NameEN: "Dessert", Icon: "🍰", DisplayOrder: 4},
			{Slug: "hamburger", NameTR: "Hamburger", NameEN: "Burger", Icon: "🍔", DisplayOrder: 5},
			{Slug: "kahvalti", NameTR: "Kahvaltı", NameEN: "Breakfast", Icon: "🍳", DisplayOrder: 6},
			{Slug: "balik", NameTR: "Balık", NameEN: "Seafood", Icon: "🐟", DisplayOrder: 7},
			{Slug: "bar", NameTR: "Bar", NameEN: "Bar", Icon: "🍺", DisplayOrder: 8},
			{Slug: "genel", NameTR: "Genel", NameEN: "General", Icon: "📍", DisplayOrder: 9},
		}
		for _, category := range categories {
			if err := conn.Create(&category).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", category.Slug, err)
			}
		}
		log.Println("Initial categories created")
	}

	conn.Model(&models.Location{}).Count(&count)
	if count == 0 {
		cities := []models.Location{
			{Slug: "istanbul", NameTR: "İstanbul", NameEN: "Istanbul"},
			{Slug: "ankara", NameTR: "Ankara", NameEN: "Ankara"},
			{Slug: "izmir", NameTR: "İzmir", NameEN: "Izmir"},
			{Slug: "antalya", NameTR: "Antalya", NameEN: "Antalya"},
			{Slug: "bursa", NameTR: "Bursa", NameEN: "Bursa"},
			{Slug: "adana", NameTR: "Adana", NameEN: "Adana"},
			{Slug: "gaziantep", NameTR: "Gaziantep", NameEN: "Gaziantep"},
		}
		for _, city := range cities {
			if err := conn.Create(&city).Error; err != nil {
				log.Printf("Failed to seed city %s: %v", city.Slug, err)
			}
		}
		log.Println("Initial cities created")
	}
}
