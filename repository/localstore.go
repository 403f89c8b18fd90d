package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the client-local sqlite store and migrates its tables.
// Delivery profile, reviewed flags and the saved session live here and
// nowhere else.
func Open(dataDir string) (*gorm.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(dataDir, "foody.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := db.AutoMigrate(
		&entity.DeliveryProfile{},
		&entity.ReviewMark{},
		&entity.SavedSession{},
	); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return db, nil
}
