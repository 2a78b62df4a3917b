package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
	"github.com/jhoicas/crm-inmobiliario/pkg/textnorm"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo catálogo global de ubicaciones (barrio, ciudad, provincia).
type LocationRepo struct {
	db *gorm.DB
}

// NewLocationRepository construye el repositorio.
func NewLocationRepository(db *gorm.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// LocationKey clave única sin acentos: "barrio|ciudad|provincia".
func LocationKey(neighborhood, city, province string) string {
	return textnorm.Key(neighborhood, city, province)
}

// FindOrCreate devuelve la ubicación con la misma clave o la crea.
// Si otra petición la inserta a la vez, se relee la existente.
func (r *LocationRepo) FindOrCreate(ctx context.Context, loc *entity.Location) (*entity.Location, error) {
	loc.City = strings.TrimSpace(loc.City)
	if loc.City == "" {
		return nil, fmt.Errorf("find or create location: ciudad obligatoria: %w", domain.ErrValidation)
	}
	loc.Neighborhood = strings.TrimSpace(loc.Neighborhood)
	loc.Province = strings.TrimSpace(loc.Province)
	if loc.Municipality == "" {
		loc.Municipality = loc.City
	}
	loc.Key = LocationKey(loc.Neighborhood, loc.City, loc.Province)
	loc.IsActive = true

	db := r.db.WithContext(ctx)
	out := *loc
	err := db.Where(entity.Location{Key: loc.Key}).Attrs(*loc).FirstOrCreate(&out).Error
	if err == nil {
		return &out, nil
	}
	if !isUniqueViolation(err) {
		return nil, wrapErr("find or create location", err)
	}
	var existing entity.Location
	if err := db.Where("location_key = ?", loc.Key).Take(&existing).Error; err != nil {
		return nil, wrapErr("find or create location", err)
	}
	return &existing, nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	var loc entity.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&loc).Error; err != nil {
		return nil, wrapErr("get location", err)
	}
	return &loc, nil
}

// Search ubicaciones activas cuya clave contiene el texto (sin acentos).
func (r *LocationRepo) Search(ctx context.Context, q string, limit int) ([]*entity.Location, error) {
	if limit < 1 || limit > repository.MaxPageSize {
		limit = 20
	}
	term := strings.ReplaceAll(textnorm.Fold(q), "%", "")
	var out []*entity.Location
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND location_key LIKE ?", true, "%"+term+"%").
		Order("city, neighborhood, id").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, wrapErr("search locations", err)
	}
	return out, nil
}
