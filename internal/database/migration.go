package database

import (
	"fmt"

	"github.com/thiagofalasca/finance-api/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
// The unique index on users.email acts as the storage-layer backstop for
// the service-level uniqueness check, which is not atomic on its own.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
