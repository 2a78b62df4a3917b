package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// LookupUseCase consultas a Catastro y geocodificación, y autocompletado de inmuebles.
type LookupUseCase struct {
	catastro  ports.CadastralLookup
	geocoder  ports.Geocoder
	locations repository.LocationRepository
	sessions  *auth.Resolver
	log       zerolog.Logger
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(catastro ports.CadastralLookup, geocoder ports.Geocoder, locations repository.LocationRepository, sessions *auth.Resolver, log zerolog.Logger) *LookupUseCase {
	return &LookupUseCase{
		catastro:  catastro,
		geocoder:  geocoder,
		locations: locations,
		sessions:  sessions,
		log:       log.With().Str("component", "lookup").Logger(),
	}
}

// Cadastral datos del Catastro; ErrNotFound si la referencia no existe.
func (uc *LookupUseCase) Cadastral(ctx context.Context, ref string) (*dto.CadastralData, error) {
	if _, err := uc.sessions.CurrentAccountID(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("referencia catastral obligatoria: %w", domain.ErrValidation)
	}
	data, err := uc.catastro.LookupByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("catastro %s: %w", ref, domain.ErrNotFound)
	}
	return data, nil
}

// Geocode coordenadas de una dirección; con barrio resuelto registra la ubicación.
func (uc *LookupUseCase) Geocode(ctx context.Context, address string) (*dto.GeocodeResult, error) {
	if _, err := uc.sessions.CurrentAccountID(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("dirección obligatoria: %w", domain.ErrValidation)
	}
	res, err := uc.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("geocode %q: %w", address, domain.ErrNotFound)
	}
	if _, err := uc.registerLocation(ctx, res); err != nil {
		uc.log.Warn().Err(err).Str("city", res.City).Msg("no se pudo registrar la ubicación")
	}
	return res, nil
}

func (uc *LookupUseCase) registerLocation(ctx context.Context, res *dto.GeocodeResult) (*entity.Location, error) {
	if res.Neighborhood == "" || res.City == "" {
		return nil, nil
	}
	return uc.locations.FindOrCreate(ctx, &entity.Location{
		Neighborhood: res.Neighborhood,
		City:         res.City,
		Province:     res.Province,
	})
}

// EnrichProperty consulta Catastro y geocodificación en paralelo y devuelve un inmueble
// prerrellenado. Si una de las fuentes falla se usa la otra; falla solo si fallan ambas.
func (uc *LookupUseCase) EnrichProperty(ctx context.Context, in dto.EnrichPropertyRequest) (*dto.EnrichPropertyResponse, error) {
	if _, err := uc.sessions.CurrentAccountID(ctx); err != nil {
		return nil, err
	}
	ref := strings.ToUpper(strings.TrimSpace(in.CadastralReference))
	address := strings.TrimSpace(in.Address)
	if ref == "" && address == "" {
		return nil, fmt.Errorf("cadastral_reference o address obligatorio: %w", domain.ErrValidation)
	}

	var (
		cad            *dto.CadastralData
		geo            *dto.GeocodeResult
		cadErr, geoErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	if ref != "" {
		g.Go(func() error {
			cad, cadErr = uc.catastro.LookupByReference(gctx, ref)
			return nil
		})
	}
	if address != "" {
		g.Go(func() error {
			geo, geoErr = uc.geocoder.Geocode(gctx, address)
			return nil
		})
	}
	_ = g.Wait()

	if cadErr != nil {
		uc.log.Warn().Err(cadErr).Str("ref", ref).Msg("catastro no disponible")
	}
	if geoErr != nil {
		uc.log.Warn().Err(geoErr).Str("address", address).Msg("geocodificación no disponible")
	}
	if cad == nil && geo == nil {
		if cadErr != nil {
			return nil, cadErr
		}
		if geoErr != nil {
			return nil, geoErr
		}
		return nil, fmt.Errorf("sin datos para el inmueble: %w", domain.ErrNotFound)
	}

	// con catastro y sin dirección explícita se geocodifica la dirección catastral
	if geo == nil && cad != nil && address == "" && cad.Street != "" {
		full := strings.Join([]string{cad.Street, cad.PostalCode, cad.City, cad.Province}, ", ")
		if res, err := uc.geocoder.Geocode(ctx, full); err == nil {
			geo = res
		} else {
			uc.log.Warn().Err(err).Str("address", full).Msg("geocodificación de la dirección catastral")
		}
	}

	out := &dto.EnrichPropertyResponse{Cadastral: cad, Geocode: geo}
	applyCadastral(&out.Property, cad)
	if geo != nil {
		lat, lon := geo.Latitude, geo.Longitude
		out.Property.Latitude, out.Property.Longitude = &lat, &lon
		if out.Property.City == "" {
			out.Property.City = geo.City
		}
		if out.Property.Province == "" {
			out.Property.Province = geo.Province
		}
		if out.Property.PostalCode == "" {
			out.Property.PostalCode = geo.PostalCode
		}
		out.Property.Neighborhood = geo.Neighborhood
		loc, err := uc.registerLocation(ctx, geo)
		if err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo registrar la ubicación")
		}
		if loc != nil {
			out.Location = loc
			out.Property.LocationID = &loc.ID
		}
	}
	return out, nil
}

func applyCadastral(p *entity.Property, cad *dto.CadastralData) {
	if cad == nil {
		return
	}
	p.CadastralReference = cad.CadastralReference
	p.Street = cad.Street
	p.AddressDetails = cad.AddressDetails
	p.PostalCode = cad.PostalCode
	p.City = cad.City
	p.Province = cad.Province
	p.SquareMeter = cad.SquareMeter
	p.BuiltSurfaceArea = cad.SquareMeter
	p.YearBuilt = cad.YearBuilt
	if cad.PropertyType != "" {
		p.PropertyType = cad.PropertyType
	} else {
		p.PropertyType = entity.PropertyTypePiso
	}
}
