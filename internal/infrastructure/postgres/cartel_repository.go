package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var _ repository.CartelRepository = (*CartelRepo)(nil)

// CartelRepo configuraciones de cartel de escaparate.
type CartelRepo struct {
	*scopedRepository[entity.CartelConfiguration, *entity.CartelConfiguration]
}

// NewCartelRepository construye el repositorio.
func NewCartelRepository(db *gorm.DB) *CartelRepo {
	base := newScopedRepository[entity.CartelConfiguration](db, "cartel configuration")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, c *entity.CartelConfiguration) error {
		if c.Name == "" {
			return fmt.Errorf("nombre obligatorio: %w", domain.ErrValidation)
		}
		if _, err := entity.DecodeCartelSettings(c.Settings); err != nil {
			return fmt.Errorf("%v: %w", err, domain.ErrValidation)
		}
		return setOwner(ctx, db, accountID, c)
	}
	return &CartelRepo{scopedRepository: base}
}

// GetDefault configuración marcada por defecto; ErrNotFound si no hay.
func (r *CartelRepo) GetDefault(ctx context.Context, accountID int64) (*entity.CartelConfiguration, error) {
	return r.first(ctx, "get default cartel", accountID,
		clause.Eq{Column: col("is_default"), Value: true}, activeOnly())
}

// ClearDefault desmarca todas las configuraciones de la cuenta.
func (r *CartelRepo) ClearDefault(ctx context.Context, accountID int64) error {
	scope, err := r.scope(accountID, clause.Eq{Column: col("is_default"), Value: true})
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&entity.CartelConfiguration{}).Scopes(scope).
		Update("is_default", false).Error
	if err != nil {
		return wrapErr("clear default cartel", err)
	}
	return nil
}
