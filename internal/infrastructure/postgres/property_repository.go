package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var (
	_ repository.PropertyRepository      = (*PropertyRepo)(nil)
	_ repository.PropertyImageRepository = (*PropertyImageRepo)(nil)
)

// PropertyRepo inmuebles de la cuenta.
type PropertyRepo struct {
	*scopedRepository[entity.Property, *entity.Property]
}

// NewPropertyRepository construye el repositorio de inmuebles.
func NewPropertyRepository(db *gorm.DB) *PropertyRepo {
	base := newScopedRepository[entity.Property](db, "property")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, p *entity.Property) error {
		p.CadastralReference = strings.ToUpper(strings.TrimSpace(p.CadastralReference))
		if p.OwnerContactID != nil {
			if err := ensureOwned(ctx, db, "contacts", *p.OwnerContactID, accountID); err != nil {
				return err
			}
		}
		return setOwner(ctx, db, accountID, p)
	}
	base.references = map[string]string{"owner_contact_id": "contacts"}
	return &PropertyRepo{scopedRepository: base}
}

// GetByCadastralReference inmueble activo con esa referencia catastral.
func (r *PropertyRepo) GetByCadastralReference(ctx context.Context, accountID int64, ref string) (*entity.Property, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return nil, fmt.Errorf("referencia catastral vacía: %w", domain.ErrValidation)
	}
	return r.first(ctx, "get property by cadastral reference", accountID,
		clause.Eq{Column: col("cadastral_reference"), Value: ref}, activeOnly())
}

// PropertyImageRepo imágenes; la tabla no tiene account_id y se aísla a través de properties.
type PropertyImageRepo struct {
	*scopedRepository[entity.PropertyImage, *entity.PropertyImage]
}

// NewPropertyImageRepository construye el repositorio de imágenes.
func NewPropertyImageRepository(db *gorm.DB) *PropertyImageRepo {
	base := newScopedRepository[entity.PropertyImage](db, "property image")
	base.predicate = viaParent("properties", "property_id")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, img *entity.PropertyImage) error {
		if strings.TrimSpace(img.URL) == "" {
			return fmt.Errorf("url obligatoria: %w", domain.ErrValidation)
		}
		return ensureOwned(ctx, db, "properties", img.PropertyID, accountID)
	}
	base.references = map[string]string{"property_id": "properties"}
	return &PropertyImageRepo{scopedRepository: base}
}

var imageOrder = []clause.OrderByColumn{
	{Column: col("sort_order")},
	{Column: col("id")},
}

// ListByProperty imágenes activas del inmueble por sort_order.
func (r *PropertyImageRepo) ListByProperty(ctx context.Context, accountID, propertyID int64) ([]*entity.PropertyImage, error) {
	return r.ListByProperties(ctx, accountID, []int64{propertyID})
}

// ListByProperties imágenes de varios inmuebles en una sola consulta.
func (r *PropertyImageRepo) ListByProperties(ctx context.Context, accountID int64, propertyIDs []int64) ([]*entity.PropertyImage, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, "list property images", accountID,
		clause.OrderBy{Columns: imageOrder},
		filterExpr("property_id", propertyIDs), activeOnly())
}

// Reorder asigna sort_order según la posición en orderedIDs.
// Todas las imágenes deben pertenecer al inmueble indicado.
func (r *PropertyImageRepo) Reorder(ctx context.Context, accountID, propertyID int64, orderedIDs []int64) error {
	if err := ensureOwned(ctx, r.db, "properties", propertyID, accountID); err != nil {
		return fmt.Errorf("reorder images: %w", err)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range orderedIDs {
			res := tx.Model(&entity.PropertyImage{}).
				Where("id = ? AND property_id = ?", id, propertyID).
				Update("sort_order", pos)
			if res.Error != nil {
				return wrapErr("reorder images", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("reorder images: imagen %d: %w", id, domain.ErrNotFound)
			}
		}
		return nil
	})
}
