package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"mekanlist/internal/db"
	"mekanlist/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the production schema.
// cache=shared keeps the pooled connections on the same database; the unique
// name isolates tests from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:mekanlist_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Username: email, Email: email, Password: "x"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedCategory(t *testing.T, conn *gorm.DB, slug string) models.Category {
	t.Helper()
	category := models.Category{Slug: slug, NameTR: slug, NameEN: slug}
	if err := conn.Create(&category).Error; err != nil {
		t.Fatalf("seed category %s: %v", slug, err)
	}
	return category
}

func seedLocation(t *testing.T, conn *gorm.DB, slug, nameTR, nameEN string) models.Location {
	t.Helper()
	location := models.Location{Slug: slug, NameTR: nameTR, NameEN: nameEN}
	if err := conn.Create(&location).Error; err != nil {
		t.Fatalf("seed location %s: %v", slug, err)
	}
	return location
}

func seedPlace(t *testing.T, conn *gorm.DB, name string, categoryID uint) models.Place {
	t.Helper()
	place := models.Place{
		Slug:       NewSlug(name),
		NameTR:     name,
		NameEN:     name,
		CategoryID: categoryID,
		Status:     models.PlaceStatusApproved,
	}
	if err := conn.Create(&place).Error; err != nil {
		t.Fatalf("seed place %s: %v", name, err)
	}
	return place
}

func countRows(t *testing.T, conn *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
