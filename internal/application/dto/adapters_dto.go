package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
)

// CadastralData datos normalizados de la Sede Electrónica del Catastro.
type CadastralData struct {
	CadastralReference string `json:"cadastralReference"`
	Street             string `json:"street"`
	AddressDetails     string `json:"addressDetails"`
	PostalCode         string `json:"postalCode"`
	City               string `json:"city"`
	Province           string `json:"province"`
	SquareMeter        int    `json:"squareMeter"`
	YearBuilt          int    `json:"yearBuilt"`
	PropertyType       string `json:"propertyType"`
	Usage              string `json:"usage"`
}

// GeocodeResult coordenadas y ubicación administrativa de una dirección.
type GeocodeResult struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	PostalCode   string  `json:"postalCode,omitempty"`
}

// PortalPublishResult {success, payload, response} o {success:false, error}.
type PortalPublishResult struct {
	Success  bool           `json:"success"`
	Payload  map[string]any `json:"payload,omitempty"`
	Response map[string]any `json:"response,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// ListingDescriptionInput datos del inmueble para redactar la descripción.
type ListingDescriptionInput struct {
	ListingType  string          `json:"listing_type"`
	PropertyType string          `json:"property_type"`
	City         string          `json:"city"`
	Neighborhood string          `json:"neighborhood"`
	SquareMeter  int             `json:"square_meter"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	Price        decimal.Decimal `json:"price"`
	Features     []string        `json:"features"`
}

// ListingDescriptionDTO texto propuesto por el modelo.
type ListingDescriptionDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ── Nota de encargo ──

// NotaEncargoRequest cuerpo de POST /api/nota-encargo/generate-pdf.
type NotaEncargoRequest struct {
	Data *NotaEncargoData `json:"data"`
}

// NotaEncargoData contenido de la nota de encargo.
type NotaEncargoData struct {
	DocumentNumber string               `json:"documentNumber"`
	Date           string               `json:"date"`
	Agency         NotaEncargoAgency    `json:"agency"`
	Client         NotaEncargoClient    `json:"client"`
	Property       NotaEncargoProperty  `json:"property"`
	Operation      NotaEncargoOperation `json:"operation"`
	Commission     NotaEncargoFee       `json:"commission"`
	Duration       NotaEncargoDuration  `json:"duration"`
	Observations   string               `json:"observations,omitempty"`
}

type NotaEncargoAgency struct {
	Name         string `json:"name"`
	CIF          string `json:"cif"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	AgentName    string `json:"agentName"`
	Registration string `json:"registration,omitempty"` // registro de agentes (AICAT, etc.)
}

type NotaEncargoClient struct {
	FullName string `json:"fullName"`
	NIF      string `json:"nif"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type NotaEncargoProperty struct {
	Address            string `json:"address"`
	City               string `json:"city"`
	Province           string `json:"province"`
	CadastralReference string `json:"cadastralReference"`
	PropertyType       string `json:"propertyType"`
	SquareMeter        int    `json:"squareMeter"`
	Registry           string `json:"registry,omitempty"` // finca registral
}

type NotaEncargoOperation struct {
	Type      string          `json:"type"` // Sale | Rent
	Price     decimal.Decimal `json:"price"`
	Exclusive bool            `json:"exclusive"`
}

type NotaEncargoFee struct {
	Percent     decimal.Decimal `json:"percent"`
	FixedAmount decimal.Decimal `json:"fixedAmount"`
	IncludesVAT bool            `json:"includesVAT"`
	// Calculada por el caso de uso
	Amount decimal.Decimal `json:"amount"`
}

type NotaEncargoDuration struct {
	Months    int    `json:"months"`
	StartDate string `json:"startDate"`
}

// Validate comprueba los campos imprescindibles del documento.
func (d *NotaEncargoData) Validate() error {
	var missing []string
	if strings.TrimSpace(d.DocumentNumber) == "" {
		missing = append(missing, "documentNumber")
	}
	if strings.TrimSpace(d.Agency.Name) == "" {
		missing = append(missing, "agency.name")
	}
	if strings.TrimSpace(d.Client.FullName) == "" {
		missing = append(missing, "client.fullName")
	}
	if strings.TrimSpace(d.Property.Address) == "" {
		missing = append(missing, "property.address")
	}
	if d.Operation.Type != "Sale" && d.Operation.Type != "Rent" {
		missing = append(missing, "operation.type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("faltan campos: %s: %w", strings.Join(missing, ", "), domain.ErrValidation)
	}
	if !d.Operation.Price.IsPositive() {
		return fmt.Errorf("operation.price debe ser positivo: %w", domain.ErrValidation)
	}
	if d.Commission.Percent.IsNegative() || d.Commission.FixedAmount.IsNegative() {
		return fmt.Errorf("commission no puede ser negativa: %w", domain.ErrValidation)
	}
	if d.Duration.Months < 0 {
		return fmt.Errorf("duration.months no puede ser negativo: %w", domain.ErrValidation)
	}
	return nil
}
