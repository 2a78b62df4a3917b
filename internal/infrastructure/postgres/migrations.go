package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// Models entidades persistidas, en orden de dependencia.
func Models() []interface{} {
	return []interface{}{
		&entity.Account{},
		&entity.Role{},
		&entity.User{},
		&entity.UserRole{},
		&entity.AccountRole{},
		&entity.Location{},
		&entity.Contact{},
		&entity.UserComment{},
		&entity.Property{},
		&entity.PropertyImage{},
		&entity.Listing{},
		&entity.Prospect{},
		&entity.ListingContact{},
		&entity.Deal{},
		&entity.Appointment{},
		&entity.Task{},
		&entity.Document{},
		&entity.Comment{},
		&entity.CartelConfiguration{},
		&entity.WebsiteConfiguration{},
	}
}

// partialIndexes índices que AutoMigrate no expresa. Válidos en PostgreSQL y SQLite.
var partialIndexes = []string{
	// Una sola configuración de cartel predeterminada y activa por cuenta.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_cartel_default_per_account
		ON cartel_configurations (account_id) WHERE is_default AND is_active`,
}

// Migrate crea o actualiza el esquema, sus índices parciales y el catálogo de roles. Idempotente.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	for _, stmt := range partialIndexes {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("índice parcial: %w", err)
		}
	}
	if _, err := NewRoleRepository(db).EnsureCatalog(ctx); err != nil {
		return err
	}
	return nil
}
