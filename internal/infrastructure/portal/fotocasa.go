// Package portal publica anuncios en portales inmobiliarios externos.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

var _ ports.PortalPublisher = (*Fotocasa)(nil)

// Identificadores de características del esquema de importación de Fotocasa.
const (
	featureSurface       = 1
	featureTitle         = 2
	featureDescription   = 3
	featureRooms         = 11
	featureBathrooms     = 12
	featureElevator      = 22
	featureParking       = 23
	featureStorageRoom   = 24
	featureTerrace       = 27
	featureAirCondition  = 254
	featureHeating       = 29
	featureFurnished     = 30
	featurePool          = 25
	featureYearBuilt     = 231
	featureCommunityFees = 288
)

// Tipos de inmueble y de transacción.
const (
	typeFlat       = 1
	typeHouse      = 2
	typeCommercial = 3
	typeGarage     = 8
	typeLand       = 6

	transactionSale = 1
	transactionRent = 3
)

var propertyTypes = map[string]int{
	entity.PropertyTypePiso:   typeFlat,
	entity.PropertyTypeCasa:   typeHouse,
	entity.PropertyTypeLocal:  typeCommercial,
	entity.PropertyTypeGaraje: typeGarage,
	entity.PropertyTypeSolar:  typeLand,
}

// Fotocasa cliente de la API de importación de Fotocasa.
type Fotocasa struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewFotocasa construye el cliente.
func NewFotocasa(endpoint, apiKey string, timeout time.Duration, log zerolog.Logger) *Fotocasa {
	return &Fotocasa{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "fotocasa").Logger(),
	}
}

// Publish envía el anuncio. Los rechazos del portal y los fallos de red se devuelven
// como {success:false, error}; solo falla con error si no se puede construir la petición.
func (f *Fotocasa) Publish(ctx context.Context, d *entity.ListingWithDetails) (*dto.PortalPublishResult, error) {
	if f.apiKey == "" {
		return &dto.PortalPublishResult{Success: false, Error: "FOTOCASA_API_KEY no configurado"}, nil
	}
	payload := BuildPayload(d)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fotocasa: serializar payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fotocasa: crear request: %w", err)
	}
	req.Header.Set("Api-Key", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Warn().Err(err).Int64("listing_id", d.Listing.ID).Msg("llamada a Fotocasa fallida")
		return &dto.PortalPublishResult{Success: false, Payload: payload, Error: err.Error()}, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return &dto.PortalPublishResult{Success: false, Payload: payload, Error: err.Error()}, nil
	}
	var parsed map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			parsed = map[string]any{"raw": string(raw)}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("Fotocasa HTTP %d", resp.StatusCode)
		if m, ok := parsed["Message"].(string); ok && m != "" {
			msg += ": " + m
		} else if m, ok := parsed["message"].(string); ok && m != "" {
			msg += ": " + m
		}
		return &dto.PortalPublishResult{Success: false, Payload: payload, Response: parsed, Error: msg}, nil
	}
	return &dto.PortalPublishResult{Success: true, Payload: payload, Response: parsed}, nil
}

// BuildPayload traduce anuncio e inmueble al esquema de importación.
func BuildPayload(d *entity.ListingWithDetails) map[string]any {
	l, p := d.Listing, d.Property

	typeID, ok := propertyTypes[p.PropertyType]
	if !ok {
		typeID = typeFlat
	}
	transaction := transactionSale
	if l.ListingType == entity.ListingTypeRent {
		transaction = transactionRent
	}

	features := []map[string]any{}
	addDecimal := func(id int, v float64) {
		if v > 0 {
			features = append(features, map[string]any{"FeatureId": id, "DecimalValue": v})
		}
	}
	addText := func(id int, v string) {
		if strings.TrimSpace(v) != "" {
			features = append(features, map[string]any{"FeatureId": id, "LanguageId": 1, "TextValue": v})
		}
	}
	addBool := func(id int, v bool) {
		if v {
			features = append(features, map[string]any{"FeatureId": id, "BoolValue": true})
		}
	}

	addDecimal(featureSurface, float64(p.SquareMeter))
	addText(featureTitle, p.Title)
	description := l.Description
	if description == "" {
		description = p.Description
	}
	addText(featureDescription, description)
	addDecimal(featureRooms, float64(p.Bedrooms))
	addDecimal(featureBathrooms, float64(p.Bathrooms))
	addBool(featureElevator, p.HasElevator)
	addBool(featureParking, p.HasGarage)
	addBool(featureStorageRoom, p.HasStorageRoom)
	addBool(featureTerrace, p.HasTerrace)
	addBool(featurePool, p.HasPool)
	addBool(featureAirCondition, p.HasAirConditioning)
	addBool(featureHeating, p.HasHeating)
	addBool(featureFurnished, p.Furnished)
	addDecimal(featureYearBuilt, float64(p.YearBuilt))
	if p.CommunityFees != nil {
		fees, _ := p.CommunityFees.Float64()
		addDecimal(featureCommunityFees, fees)
	}

	address := map[string]any{
		"ZipCode":          p.PostalCode,
		"Street":           p.Street,
		"VisibilityModeId": 2, // calle sin número
	}
	if p.Latitude != nil && p.Longitude != nil {
		address["y"] = *p.Latitude
		address["x"] = *p.Longitude
	}

	documents := make([]map[string]any, 0, len(d.Images))
	for i, img := range d.Images {
		documents = append(documents, map[string]any{
			"TypeId":    1,
			"Url":       img.URL,
			"SortingId": i + 1,
		})
	}

	price, _ := l.Price.Float64()
	return map[string]any{
		"ExternalId":          strconv.FormatInt(l.ID, 10),
		"AgencyReference":     reference(l),
		"TypeId":              typeID,
		"ContactTypeId":       1,
		"PropertyAddress":     []map[string]any{address},
		"PropertyDocument":    documents,
		"PropertyFeature":     features,
		"PropertyTransaction": []map[string]any{{"TransactionTypeId": transaction, "Price": price, "ShowPrice": true}},
	}
}

func reference(l entity.Listing) string {
	if l.PortalReference != "" {
		return l.PortalReference
	}
	return "CRM-" + strconv.FormatInt(l.ID, 10)
}
