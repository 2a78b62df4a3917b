package ports

import (
	"context"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz.
type LLMService interface {
	// DraftListingDescription redacta título y descripción comercial de un anuncio.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	DraftListingDescription(ctx context.Context, in dto.ListingDescriptionInput) (*dto.ListingDescriptionDTO, error)
}
