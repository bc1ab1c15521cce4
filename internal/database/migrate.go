package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/larder-io/larder/internal/models"
)

// migrationLockID is the advisory lock guarding schema creation on Postgres.
const migrationLockID = 1

// Migrate creates or updates the item and note tables. On Postgres the
// migration runs under an advisory lock so concurrent workers don't race
// create-table during startup; SQLite and MySQL migrations are single-process
// or idempotent enough not to need it.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	if db.Dialector.Name() == "postgres" {
		return migrateWithAdvisoryLock(db)
	}

	return autoMigrate(db)
}

func migrateWithAdvisoryLock(db *gorm.DB) error {
	if err := db.Exec("SELECT pg_advisory_lock(?)", migrationLockID).Error; err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}

	migrateErr := autoMigrate(db)

	if err := db.Exec("SELECT pg_advisory_unlock(?)", migrationLockID).Error; err != nil {
		if migrateErr != nil {
			return migrateErr
		}
		return fmt.Errorf("release migration lock: %w", err)
	}

	return migrateErr
}

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Item{},
		&models.Note{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
