// Package ports contratos de salida de la capa de aplicación (persistencia transaccional y adaptadores externos).
package ports

import (
	"context"
	"io"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repository.Repos) error) error
}

// CadastralLookup consulta de datos catastrales por referencia.
// Devuelve (nil, nil) si el Catastro no tiene datos para la referencia.
type CadastralLookup interface {
	LookupByReference(ctx context.Context, ref string) (*dto.CadastralData, error)
}

// Geocoder dirección libre a coordenadas. (nil, nil) si no hay resultado en España.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*dto.GeocodeResult, error)
}

// PortalPublisher publicación de anuncios en portales inmobiliarios.
type PortalPublisher interface {
	Publish(ctx context.Context, listing *entity.ListingWithDetails) (*dto.PortalPublishResult, error)
}

// BlobStore almacenamiento de ficheros; devuelve la URL pública del objeto.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// NotaEncargoRenderer genera el PDF de la nota de encargo.
type NotaEncargoRenderer interface {
	Render(ctx context.Context, data *dto.NotaEncargoData) ([]byte, error)
}
