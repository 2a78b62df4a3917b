package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"gorm.io/datatypes"
)

// CartelSettingsVersion versión vigente de las plantillas de cartel.
const CartelSettingsVersion = 1

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CartelSettings plantilla tipada de un cartel (póster de escaparate).
type CartelSettings struct {
	Version        int    `json:"version"`
	TemplateStyle  string `json:"template_style"` // modern, classic, minimal
	Orientation    string `json:"orientation"`    // vertical, horizontal
	ListingType    string `json:"listing_type"`   // Sale, Rent
	PrimaryColor   string `json:"primary_color"`
	ShowPrice      bool   `json:"show_price"`
	ShowIcons      bool   `json:"show_icons"`
	ShowQR         bool   `json:"show_qr"`
	ShowReference  bool   `json:"show_reference"`
	ShowPhone      bool   `json:"show_phone"`
	ShowWebsite    bool   `json:"show_website"`
	AdditionalText string `json:"additional_text,omitempty"`
}

// Validate comprueba la plantilla.
func (s CartelSettings) Validate() error {
	if s.Version != CartelSettingsVersion {
		return fmt.Errorf("cartel: versión %d no soportada", s.Version)
	}
	switch s.TemplateStyle {
	case "modern", "classic", "minimal":
	default:
		return fmt.Errorf("cartel: estilo %q no soportado", s.TemplateStyle)
	}
	if s.Orientation != "vertical" && s.Orientation != "horizontal" {
		return fmt.Errorf("cartel: orientación %q no soportada", s.Orientation)
	}
	if s.ListingType != "" && !IsValidListingType(s.ListingType) {
		return fmt.Errorf("cartel: tipo de operación %q no soportado", s.ListingType)
	}
	if s.PrimaryColor != "" && !hexColor.MatchString(s.PrimaryColor) {
		return fmt.Errorf("cartel: color %q inválido", s.PrimaryColor)
	}
	return nil
}

// DecodeCartelSettings decodifica de forma estricta y valida la plantilla almacenada.
func DecodeCartelSettings(raw datatypes.JSON) (CartelSettings, error) {
	var s CartelSettings
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return CartelSettings{}, fmt.Errorf("cartel: %w", err)
	}
	return s, s.Validate()
}

// CartelConfiguration plantilla guardada; como mucho una por cuenta es la predeterminada.
type CartelConfiguration struct {
	Owned
	UserID    int64          `gorm:"index" json:"user_id"`
	Name      string         `gorm:"not null" json:"name"`
	IsDefault bool           `gorm:"not null;default:false;index" json:"is_default"`
	Settings  datatypes.JSON `json:"settings"`
}
