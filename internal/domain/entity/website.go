package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// WebsiteSection nombre de una sección configurable de la web pública.
type WebsiteSection string

const (
	SectionHero         WebsiteSection = "hero"
	SectionAbout        WebsiteSection = "about"
	SectionFooter       WebsiteSection = "footer"
	SectionSEO          WebsiteSection = "seo"
	SectionProperties   WebsiteSection = "properties"
	SectionTestimonials WebsiteSection = "testimonials"
	SectionHead         WebsiteSection = "head"
	SectionContact      WebsiteSection = "contact"
)

// WebsiteSections todas las secciones, en orden de página.
var WebsiteSections = []WebsiteSection{
	SectionHead, SectionSEO, SectionHero, SectionProperties, SectionAbout,
	SectionTestimonials, SectionContact, SectionFooter,
}

// Column columna JSON donde se guarda la sección ("" si no existe).
func (s WebsiteSection) Column() string {
	switch s {
	case SectionHero:
		return "hero_props"
	case SectionAbout:
		return "about_props"
	case SectionFooter:
		return "footer_props"
	case SectionSEO:
		return "seo_props"
	case SectionProperties:
		return "properties_props"
	case SectionTestimonials:
		return "testimonial_props"
	case SectionHead:
		return "head_props"
	case SectionContact:
		return "contact_props"
	default:
		return ""
	}
}

// WebsiteConfiguration una fila por cuenta, una columna JSON por sección.
type WebsiteConfiguration struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID        int64          `gorm:"uniqueIndex;not null" json:"account_id"`
	HeroProps        datatypes.JSON `json:"hero_props"`
	AboutProps       datatypes.JSON `json:"about_props"`
	FooterProps      datatypes.JSON `json:"footer_props"`
	SEOProps         datatypes.JSON `gorm:"column:seo_props" json:"seo_props"`
	PropertiesProps  datatypes.JSON `json:"properties_props"`
	TestimonialProps datatypes.JSON `json:"testimonial_props"`
	HeadProps        datatypes.JSON `json:"head_props"`
	ContactProps     datatypes.JSON `json:"contact_props"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Raw devuelve el JSON almacenado de una sección.
func (w *WebsiteConfiguration) Raw(s WebsiteSection) datatypes.JSON {
	switch s {
	case SectionHero:
		return w.HeroProps
	case SectionAbout:
		return w.AboutProps
	case SectionFooter:
		return w.FooterProps
	case SectionSEO:
		return w.SEOProps
	case SectionProperties:
		return w.PropertiesProps
	case SectionTestimonials:
		return w.TestimonialProps
	case SectionHead:
		return w.HeadProps
	case SectionContact:
		return w.ContactProps
	default:
		return nil
	}
}

// SetRaw asigna el JSON de una sección; secciones desconocidas se ignoran.
func (w *WebsiteConfiguration) SetRaw(s WebsiteSection, raw datatypes.JSON) {
	switch s {
	case SectionHero:
		w.HeroProps = raw
	case SectionAbout:
		w.AboutProps = raw
	case SectionFooter:
		w.FooterProps = raw
	case SectionSEO:
		w.SEOProps = raw
	case SectionProperties:
		w.PropertiesProps = raw
	case SectionTestimonials:
		w.TestimonialProps = raw
	case SectionHead:
		w.HeadProps = raw
	case SectionContact:
		w.ContactProps = raw
	}
}

// SectionSchema esquema tipado de una sección.
type SectionSchema interface {
	Validate() error
}

var errMissingTitle = errors.New("title es obligatorio")

// HeroSection portada.
type HeroSection struct {
	Title              string `json:"title"`
	Subtitle           string `json:"subtitle"`
	BackgroundImage    string `json:"backgroundImage"`
	FindPropertyButton string `json:"findPropertyButton"`
	ContactButton      string `json:"contactButton"`
}

func (h HeroSection) Validate() error {
	if h.Title == "" {
		return errMissingTitle
	}
	return nil
}

// Service servicio listado en "sobre nosotros".
type Service struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// KPI cifra destacada.
type KPI struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// AboutSection sobre nosotros.
type AboutSection struct {
	Title                string    `json:"title"`
	Subtitle             string    `json:"subtitle"`
	Content              string    `json:"content"`
	Content2             string    `json:"content2"`
	Image                string    `json:"image"`
	ServicesSectionTitle string    `json:"servicesSectionTitle"`
	AboutSectionTitle    string    `json:"aboutSectionTitle"`
	Services             []Service `json:"services"`
	MaxServicesDisplayed int       `json:"maxServicesDisplayed"`
	ShowKPI              bool      `json:"showKPI"`
	KPIs                 []KPI     `json:"kpis,omitempty"`
}

func (a AboutSection) Validate() error {
	if a.Title == "" {
		return errMissingTitle
	}
	if a.MaxServicesDisplayed < 0 {
		return errors.New("maxServicesDisplayed no puede ser negativo")
	}
	return nil
}

// OfficeLocation oficina mostrada en pie y contacto.
type OfficeLocation struct {
	Name      string   `json:"name"`
	Address   []string `json:"address"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
}

// FooterSection pie de página.
type FooterSection struct {
	CompanyName          string            `json:"companyName"`
	Description          string            `json:"description"`
	SocialLinks          map[string]string `json:"socialLinks"`
	OfficeLocations      []OfficeLocation  `json:"officeLocations"`
	QuickLinksVisibility map[string]bool   `json:"quickLinksVisibility"`
	CopyrightText        string            `json:"copyrightText"`
}

func (f FooterSection) Validate() error {
	if f.CompanyName == "" {
		return errors.New("companyName es obligatorio")
	}
	return nil
}

// SEOSection metadatos SEO.
type SEOSection struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	Name          string   `json:"name"`
	OGTitle       string   `json:"ogTitle"`
	OGDescription string   `json:"ogDescription"`
	OGImage       string   `json:"ogImage"`
	OGType        string   `json:"ogType"`
	OGURL         string   `json:"ogUrl"`
	OGSiteName    string   `json:"ogSiteName"`
	OGLocale      string   `json:"ogLocale"`
	TwitterCard   string   `json:"twitterCard"`
	TwitterImage  string   `json:"twitterImage"`
	CanonicalURL  string   `json:"canonicalUrl"`
}

func (s SEOSection) Validate() error {
	if s.Title == "" {
		return errMissingTitle
	}
	if len(s.Description) > 320 {
		return errors.New("description supera 320 caracteres")
	}
	return nil
}

// PropertiesSection listado de inmuebles.
type PropertiesSection struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	ItemsPerPage int    `json:"itemsPerPage"`
	DefaultSort  string `json:"defaultSort"`
	ButtonText   string `json:"buttonText"`
}

func (p PropertiesSection) Validate() error {
	if p.Title == "" {
		return errMissingTitle
	}
	if p.ItemsPerPage < 1 || p.ItemsPerPage > 60 {
		return fmt.Errorf("itemsPerPage fuera de rango: %d", p.ItemsPerPage)
	}
	return nil
}

// Testimonial opinión de un cliente.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Avatar  string `json:"avatar,omitempty"`
	Rating  int    `json:"rating"`
}

// TestimonialsSection opiniones.
type TestimonialsSection struct {
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	ItemsPerPage int           `json:"itemsPerPage"`
	Items        []Testimonial `json:"items"`
}

func (t TestimonialsSection) Validate() error {
	if t.Title == "" {
		return errMissingTitle
	}
	for i, it := range t.Items {
		if it.Rating < 0 || it.Rating > 5 {
			return fmt.Errorf("items[%d].rating fuera de rango", i)
		}
	}
	return nil
}

// Script etiqueta inyectada en head/body.
type Script struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
}

// HeadSection scripts personalizados (analítica, píxeles).
type HeadSection struct {
	HeadScripts []Script `json:"headScripts"`
	BodyScripts []Script `json:"bodyScripts"`
}

func (h HeadSection) Validate() error {
	for _, s := range append(append([]Script{}, h.HeadScripts...), h.BodyScripts...) {
		if s.Name == "" {
			return errors.New("script sin nombre")
		}
	}
	return nil
}

// ScheduleInfo horario de atención.
type ScheduleInfo struct {
	WorkingDays string `json:"workingDays"`
	Saturday    string `json:"saturday"`
	Sunday      string `json:"sunday"`
}

// ContactSection página de contacto.
type ContactSection struct {
	Title            string           `json:"title"`
	Subtitle         string           `json:"subtitle"`
	MessageForm      bool             `json:"messageForm"`
	Address          bool             `json:"address"`
	Phone            bool             `json:"phone"`
	Mail             bool             `json:"mail"`
	Schedule         bool             `json:"schedule"`
	Map              bool             `json:"map"`
	ContactFormEmail string           `json:"contactFormEmail,omitempty"`
	ScheduleInfo     *ScheduleInfo    `json:"scheduleInfo,omitempty"`
	OfficeLocations  []OfficeLocation `json:"officeLocations,omitempty"`
}

func (c ContactSection) Validate() error {
	if c.Title == "" {
		return errMissingTitle
	}
	return nil
}

// NewSectionSchema devuelve un valor vacío del esquema de la sección.
func NewSectionSchema(s WebsiteSection) (SectionSchema, error) {
	switch s {
	case SectionHero:
		return &HeroSection{}, nil
	case SectionAbout:
		return &AboutSection{}, nil
	case SectionFooter:
		return &FooterSection{}, nil
	case SectionSEO:
		return &SEOSection{}, nil
	case SectionProperties:
		return &PropertiesSection{}, nil
	case SectionTestimonials:
		return &TestimonialsSection{}, nil
	case SectionHead:
		return &HeadSection{}, nil
	case SectionContact:
		return &ContactSection{}, nil
	default:
		return nil, fmt.Errorf("sección %q desconocida", s)
	}
}

// DecodeSection decodifica de forma estricta el JSON de una sección y lo valida.
func DecodeSection(s WebsiteSection, raw []byte) (SectionSchema, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("sección %q vacía", s)
	}
	schema, err := NewSectionSchema(s)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(schema); err != nil {
		return nil, fmt.Errorf("sección %q: %w", s, err)
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("sección %q: %w", s, err)
	}
	return schema, nil
}
