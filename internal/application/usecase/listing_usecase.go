package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// llmTimeout límite de cada llamada al LLM.
const llmTimeout = 10 * time.Second

// ListingUseCase anuncios, publicación en portales y redacción asistida.
type ListingUseCase struct {
	CRUD[entity.Listing]
	listings repository.ListingRepository
	portal   ports.PortalPublisher
	llm      ports.LLMService
	log      zerolog.Logger
}

// NewListingUseCase construye el caso de uso. portal y llm pueden ser nil (integración desactivada).
func NewListingUseCase(listings repository.ListingRepository, portal ports.PortalPublisher, llm ports.LLMService, sessions *auth.Resolver, log zerolog.Logger) *ListingUseCase {
	return &ListingUseCase{
		CRUD:     newCRUD[entity.Listing](listings, sessions),
		listings: listings,
		portal:   portal,
		llm:      llm,
		log:      log.With().Str("component", "listings").Logger(),
	}
}

// Create alta de anuncio; sin agente se asigna el usuario actual.
func (uc *ListingUseCase) Create(ctx context.Context, l *entity.Listing) (*entity.Listing, error) {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if l.AgentID == 0 {
		l.AgentID = user.ID
	}
	if l.Price.IsNegative() {
		return nil, fmt.Errorf("price no puede ser negativo: %w", domain.ErrValidation)
	}
	return uc.listings.Create(ctx, user.AccountID, l)
}

// Update actualización parcial; estado y tipo se validan en el repositorio.
func (uc *ListingUseCase) Update(ctx context.Context, id int64, patch dto.ListingPatch) (*entity.Listing, error) {
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, fmt.Errorf("price no puede ser negativo: %w", domain.ErrValidation)
	}
	return uc.update(ctx, id, dto.PatchFields(patch))
}

func listingFilters(f dto.ListingFilter) map[string]any {
	filters := map[string]any{}
	if f.Status != "" {
		filters["status"] = f.Status
	}
	if f.ListingType != "" {
		filters["listing_type"] = f.ListingType
	}
	if f.AgentID > 0 {
		filters["agent_id"] = f.AgentID
	}
	if f.PropertyID > 0 {
		filters["property_id"] = f.PropertyID
	}
	return filters
}

// Search página de anuncios filtrada.
func (uc *ListingUseCase) Search(ctx context.Context, f dto.ListingFilter) (*dto.PageResponse, error) {
	return uc.List(ctx, f.PageRequest, listingFilters(f))
}

// ListByProperty anuncios activos de un inmueble.
func (uc *ListingUseCase) ListByProperty(ctx context.Context, propertyID int64) ([]*entity.Listing, error) {
	return uc.ListBy(ctx, "property_id", propertyID)
}

// ListByAgent anuncios activos de un agente.
func (uc *ListingUseCase) ListByAgent(ctx context.Context, agentID int64) ([]*entity.Listing, error) {
	return uc.ListBy(ctx, "agent_id", agentID)
}

// GetDetails anuncio con inmueble, imágenes y nombre del agente.
func (uc *ListingUseCase) GetDetails(ctx context.Context, id int64) (*entity.ListingWithDetails, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.listings.GetWithDetails(ctx, accountID, id)
}

// ListDetails página de anuncios con detalles.
func (uc *ListingUseCase) ListDetails(ctx context.Context, f dto.ListingFilter) ([]*entity.ListingWithDetails, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	f.DefaultPage()
	return uc.listings.ListWithDetails(ctx, accountID, repository.ListParams{
		Page:    f.Page,
		Limit:   f.Limit,
		Filters: listingFilters(f),
	})
}

// Publish envía el anuncio al portal. Un rechazo del portal no es error: se devuelve
// {success:false, error}. Si el portal devuelve referencia se guarda en el anuncio.
func (uc *ListingUseCase) Publish(ctx context.Context, id int64) (*dto.PortalPublishResult, error) {
	if uc.portal == nil {
		return nil, fmt.Errorf("publicación en portales no configurada: %w", domain.ErrTransient)
	}
	details, err := uc.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := uc.portal.Publish(ctx, details)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		uc.log.Warn().Int64("listing_id", id).Str("error", res.Error).Msg("portal rechazó el anuncio")
		return res, nil
	}
	if ref := portalReference(res.Response); ref != "" && ref != details.Listing.PortalReference {
		if _, err := uc.update(ctx, id, map[string]any{"portal_reference": ref}); err != nil {
			uc.log.Error().Err(err).Int64("listing_id", id).Msg("no se pudo guardar la referencia del portal")
		}
	}
	return res, nil
}

func portalReference(resp map[string]any) string {
	for _, k := range []string{"ExternalId", "externalId", "id", "Id"} {
		switch v := resp[k].(type) {
		case string:
			return v
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// DraftDescription pide al LLM título y descripción comercial del anuncio.
func (uc *ListingUseCase) DraftDescription(ctx context.Context, id int64) (*dto.ListingDescriptionDTO, error) {
	if uc.llm == nil {
		return nil, fmt.Errorf("servicio de IA no configurado: %w", domain.ErrTransient)
	}
	d, err := uc.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	in := dto.ListingDescriptionInput{
		ListingType:  d.Listing.ListingType,
		PropertyType: d.Property.PropertyType,
		City:         d.Property.City,
		Neighborhood: d.Property.Neighborhood,
		SquareMeter:  d.Property.SquareMeter,
		Bedrooms:     d.Property.Bedrooms,
		Bathrooms:    d.Property.Bathrooms,
		Price:        d.Listing.Price,
		Features:     propertyFeatures(&d.Property),
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	out, err := uc.llm.DraftListingDescription(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("descripción IA: %w", err)
	}
	return out, nil
}

func propertyFeatures(p *entity.Property) []string {
	var out []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"ascensor", p.HasElevator},
		{"garaje", p.HasGarage},
		{"trastero", p.HasStorageRoom},
		{"terraza", p.HasTerrace},
		{"piscina", p.HasPool},
		{"aire acondicionado", p.HasAirConditioning},
		{"calefacción", p.HasHeating},
		{"amueblado", p.Furnished},
	} {
		if f.on {
			out = append(out, f.name)
		}
	}
	return out
}
