package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var _ repository.WebsiteConfigRepository = (*WebsiteConfigRepo)(nil)

// WebsiteConfigRepo una fila de configuración web por cuenta.
type WebsiteConfigRepo struct {
	db *gorm.DB
}

// NewWebsiteConfigRepository construye el repositorio.
func NewWebsiteConfigRepository(db *gorm.DB) *WebsiteConfigRepo {
	return &WebsiteConfigRepo{db: db}
}

// GetByAccount fila de la cuenta; ErrNotFound si nunca se ha guardado ninguna sección.
func (r *WebsiteConfigRepo) GetByAccount(ctx context.Context, accountID int64) (*entity.WebsiteConfiguration, error) {
	scope, err := WithAccountFilter(accountID)
	if err != nil {
		return nil, err
	}
	var cfg entity.WebsiteConfiguration
	if err := r.db.WithContext(ctx).Scopes(scope).Take(&cfg).Error; err != nil {
		return nil, wrapErr("get website config", err)
	}
	return &cfg, nil
}

// UpsertSection reemplaza una sección; crea la fila en la primera escritura.
// El contenido se valida en el caso de uso antes de llegar aquí.
func (r *WebsiteConfigRepo) UpsertSection(ctx context.Context, accountID int64, section entity.WebsiteSection, raw []byte) error {
	if accountID <= 0 {
		return domain.ErrUnauthenticated
	}
	column := section.Column()
	if column == "" {
		return fmt.Errorf("sección %q: %w", section, domain.ErrValidation)
	}
	row := entity.WebsiteConfiguration{AccountID: accountID}
	row.SetRaw(section, datatypes.JSON(raw))
	now := time.Now().UTC()
	row.CreatedAt, row.UpdatedAt = now, now
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return wrapErr("upsert website section "+string(section), err)
	}
	return nil
}
