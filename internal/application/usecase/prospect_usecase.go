package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/leads"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// ProspectUseCase inmuebles en captación.
type ProspectUseCase struct {
	CRUD[entity.Prospect]
}

// NewProspectUseCase construye el caso de uso.
func NewProspectUseCase(prospects repository.ProspectRepository, sessions *auth.Resolver) *ProspectUseCase {
	return &ProspectUseCase{CRUD: newCRUD[entity.Prospect](prospects, sessions)}
}

// Create alta; el estado inicial es "Nuevo".
func (uc *ProspectUseCase) Create(ctx context.Context, p *entity.Prospect) (*entity.Prospect, error) {
	if p.ListingType != "" && !entity.IsValidListingType(p.ListingType) {
		return nil, fmt.Errorf("listing_type %q: %w", p.ListingType, domain.ErrValidation)
	}
	return uc.create(ctx, p)
}

// Update actualización parcial.
func (uc *ProspectUseCase) Update(ctx context.Context, id int64, patch dto.ProspectPatch) (*entity.Prospect, error) {
	if patch.Status != nil && !entity.IsValidProspectStatus(*patch.Status) {
		return nil, fmt.Errorf("estado de captación %q: %w", *patch.Status, domain.ErrValidation)
	}
	if patch.ListingType != nil && !entity.IsValidListingType(*patch.ListingType) {
		return nil, fmt.Errorf("listing_type %q: %w", *patch.ListingType, domain.ErrValidation)
	}
	if patch.EstimatedPrice != nil && patch.EstimatedPrice.IsNegative() {
		return nil, fmt.Errorf("estimated_price no puede ser negativo: %w", domain.ErrValidation)
	}
	return uc.update(ctx, id, dto.PatchFields(patch))
}

// ListByContact captaciones del contacto propietario.
func (uc *ProspectUseCase) ListByContact(ctx context.Context, contactID int64) ([]*entity.Prospect, error) {
	return uc.ListBy(ctx, "contact_id", contactID)
}

// LeadUseCase leads compradores (listing contacts).
type LeadUseCase struct {
	CRUD[entity.ListingContact]
	sync *leads.Synchronizer
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(repo repository.LeadRepository, sync *leads.Synchronizer, sessions *auth.Resolver) *LeadUseCase {
	return &LeadUseCase{CRUD: newCRUD[entity.ListingContact](repo, sessions), sync: sync}
}

// Create alta manual de un lead.
func (uc *LeadUseCase) Create(ctx context.Context, lc *entity.ListingContact) (*entity.ListingContact, error) {
	if lc.Source == "" {
		lc.Source = entity.LeadSourceManual
	}
	return uc.create(ctx, lc)
}

// FindByContactAndListing lead comprador activo del contacto.
func (uc *LeadUseCase) FindByContactAndListing(ctx context.Context, contactID int64, listingID *int64) (*entity.ListingContact, error) {
	return uc.sync.FindLeadByContactAndListing(ctx, contactID, listingID)
}

// UpdateStatus cambio manual de estado.
func (uc *LeadUseCase) UpdateStatus(ctx context.Context, id int64, in dto.LeadStatusRequest) (*entity.ListingContact, error) {
	return uc.sync.UpdateStatus(ctx, id, in.Status)
}

// ListByListing leads activos de un anuncio.
func (uc *LeadUseCase) ListByListing(ctx context.Context, listingID int64) ([]*entity.ListingContact, error) {
	return uc.ListBy(ctx, "listing_id", listingID)
}

// ListByContact leads activos de un contacto.
func (uc *LeadUseCase) ListByContact(ctx context.Context, contactID int64) ([]*entity.ListingContact, error) {
	return uc.ListBy(ctx, "contact_id", contactID)
}
