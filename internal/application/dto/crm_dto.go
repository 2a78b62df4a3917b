package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// ── Contactos ──

// ContactPatch actualización parcial de un contacto.
type ContactPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	NIF       *string `json:"nif"`
	Source    *string `json:"source"`
	Notes     *string `json:"notes"`
}

// UserCommentRequest nota privada sobre un contacto.
type UserCommentRequest struct {
	Content string `json:"content"`
}

// ── Inmuebles ──

// PropertyPatch actualización parcial de un inmueble.
type PropertyPatch struct {
	Title              *string          `json:"title"`
	PropertyType       *string          `json:"property_type"`
	Street             *string          `json:"street"`
	AddressDetails     *string          `json:"address_details"`
	PostalCode         *string          `json:"postal_code"`
	City               *string          `json:"city"`
	Province           *string          `json:"province"`
	Neighborhood       *string          `json:"neighborhood"`
	LocationID         *int64           `json:"location_id"`
	Latitude           *float64         `json:"latitude"`
	Longitude          *float64         `json:"longitude"`
	CadastralReference *string          `json:"cadastral_reference"`
	Bedrooms           *int             `json:"bedrooms"`
	Bathrooms          *int             `json:"bathrooms"`
	SquareMeter        *int             `json:"square_meter"`
	BuiltSurfaceArea   *int             `json:"built_surface_area"`
	YearBuilt          *int             `json:"year_built"`
	Floor              *string          `json:"floor"`
	HasElevator        *bool            `json:"has_elevator"`
	HasGarage          *bool            `json:"has_garage"`
	HasStorageRoom     *bool            `json:"has_storage_room"`
	HasTerrace         *bool            `json:"has_terrace"`
	HasPool            *bool            `json:"has_pool"`
	HasAirConditioning *bool            `json:"has_air_conditioning"`
	HasHeating         *bool            `json:"has_heating"`
	Furnished          *bool            `json:"furnished"`
	CommunityFees      *decimal.Decimal `json:"community_fees"`
	OwnerContactID     *int64           `json:"owner_contact_id"`
	Description        *string          `json:"description"`
}

// PropertyImageRequest alta de imagen por URL ya subida.
type PropertyImageRequest struct {
	URL       string `json:"url"`
	Caption   string `json:"caption"`
	SortOrder int    `json:"sort_order"`
}

// ReorderImagesRequest nuevo orden de imágenes.
type ReorderImagesRequest struct {
	ImageIDs []int64 `json:"image_ids"`
}

// EnrichPropertyRequest datos para autocompletar un inmueble.
type EnrichPropertyRequest struct {
	CadastralReference string `json:"cadastral_reference"`
	Address            string `json:"address"`
}

// EnrichPropertyResponse resultado combinado de catastro y geocodificación.
type EnrichPropertyResponse struct {
	Cadastral *CadastralData   `json:"cadastral,omitempty"`
	Geocode   *GeocodeResult   `json:"geocode,omitempty"`
	Location  *entity.Location `json:"location,omitempty"`
	Property  entity.Property  `json:"property"`
}

// ── Anuncios ──

// ListingPatch actualización parcial de un anuncio.
type ListingPatch struct {
	AgentID          *int64           `json:"agent_id"`
	ListingType      *string          `json:"listing_type"`
	Status           *string          `json:"status"`
	Price            *decimal.Decimal `json:"price"`
	IsFeatured       *bool            `json:"is_featured"`
	IsBankOwned      *bool            `json:"is_bank_owned"`
	PublishToWebsite *bool            `json:"publish_to_website"`
	PortalReference  *string          `json:"portal_reference"`
	Description      *string          `json:"description"`
}

// ListingFilter filtros de listado de anuncios.
type ListingFilter struct {
	PageRequest
	Status      string `query:"status"`
	ListingType string `query:"listing_type"`
	AgentID     int64  `query:"agent_id"`
	PropertyID  int64  `query:"property_id"`
}

// ── Captaciones ──

// ProspectPatch actualización parcial de una captación.
type ProspectPatch struct {
	Status         *string          `json:"status"`
	ListingType    *string          `json:"listing_type"`
	PropertyType   *string          `json:"property_type"`
	Street         *string          `json:"street"`
	City           *string          `json:"city"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price"`
	Notes          *string          `json:"notes"`
}

// ── Leads ──

// LeadStatusRequest cambio manual de estado de un lead.
type LeadStatusRequest struct {
	Status entity.LeadStatus `json:"status"`
}

// LeadRef resultado de find-or-create.
type LeadRef struct {
	ID      int64 `json:"id"`
	Created bool  `json:"created"`
}

// ── Citas ──

// AppointmentPatch actualización parcial (el estado va por su propio endpoint).
type AppointmentPatch struct {
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Type     *string    `json:"type"`
	Notes    *string    `json:"notes"`
	UserID   *int64     `json:"user_id"`
}

// AppointmentStatusRequest cambio de estado de una cita.
type AppointmentStatusRequest struct {
	Status entity.AppointmentStatus `json:"status"`
}

// VisitOutcomeRequest resultado de una visita.
type VisitOutcomeRequest struct {
	Outcome entity.VisitOutcome `json:"outcome"`
	Notes   string              `json:"notes"`
}

// AppointmentRange filtro de calendario.
type AppointmentRange struct {
	From   time.Time `query:"from"`
	To     time.Time `query:"to"`
	UserID int64     `query:"user_id"`
}

// ── Tareas, documentos, operaciones ──

// TaskPatch actualización parcial de una tarea.
type TaskPatch struct {
	AssignedTo  *int64     `json:"assigned_to"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// DocumentUpload metadatos de un documento subido en multipart.
type DocumentUpload struct {
	entity.EntityLink
	Filename     string
	ContentType  string
	Size         int64
	DocumentType string
}

// DealPatch actualización parcial de una operación.
type DealPatch struct {
	ContactID         *int64           `json:"contact_id"`
	Status            *string          `json:"status"`
	Amount            *decimal.Decimal `json:"amount"`
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
	CloseDate         *time.Time       `json:"close_date"`
	Notes             *string          `json:"notes"`
}

// ── Comentarios ──

// CommentRequest comentario nuevo o respuesta (con parent_id).
type CommentRequest struct {
	entity.EntityLink
	ParentID *int64 `json:"parent_id"`
	Content  string `json:"content"`
}

// ── Carteles ──

// CartelRequest alta o reemplazo de una configuración de cartel.
type CartelRequest struct {
	Name      string                `json:"name"`
	IsDefault bool                  `json:"is_default"`
	Settings  entity.CartelSettings `json:"settings"`
}

// CartelResponse configuración con sus ajustes tipados.
type CartelResponse struct {
	entity.CartelConfiguration
	Typed entity.CartelSettings `json:"typed_settings"`
}

// ── Roles de cuenta ──

// AccountRoleResponse permisos de un rol en la cuenta.
type AccountRoleResponse struct {
	ID          int64              `json:"id"`
	RoleID      int64              `json:"role_id"`
	RoleCode    string             `json:"role_code"`
	Permissions entity.Permissions `json:"permissions"`
}

// UpdatePermissionsRequest reemplazo de permisos de un rol.
type UpdatePermissionsRequest struct {
	Permissions entity.Permissions `json:"permissions"`
}
