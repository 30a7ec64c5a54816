// Package databasetest provides a throwaway store for tests: a SQLite
// database in the test's temp directory with the catalog schema created.
package databasetest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/northwind/catalog-console/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// New opens a fresh database for t. It is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "northwind.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.OrderDetail{},
	); err != nil {
		t.Fatalf("create test schema: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// Seed inserts records as-is, bypassing repository rules.
func Seed(t testing.TB, db *gorm.DB, records ...any) {
	t.Helper()
	for _, r := range records {
		if err := db.Omit(clause.Associations).Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}
