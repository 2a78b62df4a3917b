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

var (
	_ repository.ListingRepository  = (*ListingRepo)(nil)
	_ repository.ProspectRepository = (*ProspectRepo)(nil)
)

// ListingRepo anuncios (venta/alquiler) de la cuenta.
type ListingRepo struct {
	*scopedRepository[entity.Listing, *entity.Listing]
}

// NewListingRepository construye el repositorio de anuncios.
func NewListingRepository(db *gorm.DB) *ListingRepo {
	base := newScopedRepository[entity.Listing](db, "listing")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, l *entity.Listing) error {
		if !entity.IsValidListingType(l.ListingType) {
			return fmt.Errorf("tipo de operación %q: %w", l.ListingType, domain.ErrValidation)
		}
		if l.Status == "" {
			l.Status = entity.ListingStatusDraft
		}
		if !entity.IsValidListingStatus(l.Status) {
			return fmt.Errorf("estado %q: %w", l.Status, domain.ErrValidation)
		}
		if err := ensureOwned(ctx, db, "properties", l.PropertyID, accountID); err != nil {
			return err
		}
		if err := ensureOwned(ctx, db, "users", l.AgentID, accountID); err != nil {
			return err
		}
		return setOwner(ctx, db, accountID, l)
	}
	base.references = map[string]string{"property_id": "properties", "agent_id": "users"}
	return &ListingRepo{scopedRepository: base}
}

// Update valida estado y tipo antes de escribir.
func (r *ListingRepo) Update(ctx context.Context, accountID, id int64, fields map[string]any) (*entity.Listing, error) {
	if v, ok := fields["status"].(string); ok && !entity.IsValidListingStatus(v) {
		return nil, fmt.Errorf("update listing: estado %q: %w", v, domain.ErrValidation)
	}
	if v, ok := fields["listing_type"].(string); ok && !entity.IsValidListingType(v) {
		return nil, fmt.Errorf("update listing: tipo %q: %w", v, domain.ErrValidation)
	}
	return r.scopedRepository.Update(ctx, accountID, id, fields)
}

// GetWithDetails anuncio con su inmueble, imágenes y nombre del agente.
func (r *ListingRepo) GetWithDetails(ctx context.Context, accountID, id int64) (*entity.ListingWithDetails, error) {
	l, err := r.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	out, err := r.details(ctx, accountID, []*entity.Listing{l})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// ListWithDetails página de anuncios con detalles; tres consultas adicionales en total, no por fila.
func (r *ListingRepo) ListWithDetails(ctx context.Context, accountID int64, p repository.ListParams) ([]*entity.ListingWithDetails, error) {
	listings, err := r.List(ctx, accountID, p)
	if err != nil {
		return nil, err
	}
	return r.details(ctx, accountID, listings)
}

func (r *ListingRepo) details(ctx context.Context, accountID int64, listings []*entity.Listing) ([]*entity.ListingWithDetails, error) {
	if len(listings) == 0 {
		return []*entity.ListingWithDetails{}, nil
	}
	propertyIDs := make([]int64, 0, len(listings))
	agentIDs := make([]int64, 0, len(listings))
	for _, l := range listings {
		propertyIDs = append(propertyIDs, l.PropertyID)
		agentIDs = append(agentIDs, l.AgentID)
	}
	db := r.db.WithContext(ctx)

	var properties []entity.Property
	err := db.Scopes(AccountScope(accountID)).
		Where(clause.IN{Column: col("id"), Values: int64Values(propertyIDs)}).
		Find(&properties).Error
	if err != nil {
		return nil, wrapErr("listing details: properties", err)
	}
	byProperty := make(map[int64]entity.Property, len(properties))
	for _, p := range properties {
		byProperty[p.ID] = p
	}

	var images []*entity.PropertyImage
	err = db.Where(viaParent("properties", "property_id")(accountID)).
		Where(clause.IN{Column: col("property_id"), Values: int64Values(propertyIDs)}).
		Where(activeOnly()).
		Order(clause.OrderBy{Columns: imageOrder}).
		Find(&images).Error
	if err != nil {
		return nil, wrapErr("listing details: images", err)
	}
	imagesByProperty := make(map[int64][]*entity.PropertyImage)
	for _, img := range images {
		imagesByProperty[img.PropertyID] = append(imagesByProperty[img.PropertyID], img)
	}

	var agents []entity.User
	err = db.Scopes(AccountScope(accountID)).
		Where(clause.IN{Column: col("id"), Values: int64Values(agentIDs)}).
		Find(&agents).Error
	if err != nil {
		return nil, wrapErr("listing details: agents", err)
	}
	agentNames := make(map[int64]string, len(agents))
	for i := range agents {
		agentNames[agents[i].ID] = agents[i].FullName()
	}

	out := make([]*entity.ListingWithDetails, 0, len(listings))
	for _, l := range listings {
		imgs := imagesByProperty[l.PropertyID]
		if imgs == nil {
			imgs = []*entity.PropertyImage{}
		}
		out = append(out, &entity.ListingWithDetails{
			Listing:   *l,
			Property:  byProperty[l.PropertyID],
			Images:    imgs,
			AgentName: agentNames[l.AgentID],
		})
	}
	return out, nil
}

func int64Values(ids []int64) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

// ProspectRepo captaciones: propietarios que aún no han firmado encargo.
type ProspectRepo struct {
	*scopedRepository[entity.Prospect, *entity.Prospect]
}

// NewProspectRepository construye el repositorio.
func NewProspectRepository(db *gorm.DB) *ProspectRepo {
	base := newScopedRepository[entity.Prospect](db, "prospect")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, p *entity.Prospect) error {
		if p.Status == "" {
			p.Status = entity.ProspectStatusNew
		}
		if !entity.IsValidProspectStatus(p.Status) {
			return fmt.Errorf("estado %q: %w", p.Status, domain.ErrValidation)
		}
		if err := ensureOwned(ctx, db, "contacts", p.ContactID, accountID); err != nil {
			return err
		}
		return setOwner(ctx, db, accountID, p)
	}
	base.references = map[string]string{"contact_id": "contacts"}
	return &ProspectRepo{scopedRepository: base}
}
