package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (raíz del tenant, sin scope).
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) (*entity.Account, error)
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Account, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*entity.Account, error)
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Scoped[entity.User]
	// GetByEmail búsqueda global (login); incluye usuarios inactivos.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// RoleRepository catálogo global de roles.
type RoleRepository interface {
	EnsureCatalog(ctx context.Context) ([]entity.Role, error)
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	GetByCode(ctx context.Context, code string) (*entity.Role, error)
	List(ctx context.Context) ([]entity.Role, error)
}

// UserRoleRepository asignación rol-usuario (un rol por usuario).
type UserRoleRepository interface {
	Assign(ctx context.Context, userID, roleID int64) error
	RoleOf(ctx context.Context, userID int64) (*entity.Role, error)
}

// AccountRoleRepository configuración de roles por cuenta.
type AccountRoleRepository interface {
	Scoped[entity.AccountRole]
	GetByRole(ctx context.Context, accountID, roleID int64) (*entity.AccountRole, error)
}

// ContactRepository define el puerto de persistencia para Contact.
type ContactRepository interface {
	Scoped[entity.Contact]
	// Search coincidencia parcial sin acentos sobre nombre, email y teléfono.
	Search(ctx context.Context, accountID int64, q string, limit int) ([]*entity.Contact, error)
}

// UserCommentRepository notas privadas sobre contactos.
type UserCommentRepository interface {
	Scoped[entity.UserComment]
}

// PropertyRepository define el puerto de persistencia para Property.
type PropertyRepository interface {
	Scoped[entity.Property]
	GetByCadastralReference(ctx context.Context, accountID int64, ref string) (*entity.Property, error)
}

// PropertyImageRepository imágenes de un inmueble (aisladas a través de properties).
type PropertyImageRepository interface {
	Scoped[entity.PropertyImage]
	ListByProperty(ctx context.Context, accountID, propertyID int64) ([]*entity.PropertyImage, error)
	ListByProperties(ctx context.Context, accountID int64, propertyIDs []int64) ([]*entity.PropertyImage, error)
	Reorder(ctx context.Context, accountID, propertyID int64, orderedIDs []int64) error
}

// ListingRepository define el puerto de persistencia para Listing.
type ListingRepository interface {
	Scoped[entity.Listing]
	GetWithDetails(ctx context.Context, accountID, id int64) (*entity.ListingWithDetails, error)
	ListWithDetails(ctx context.Context, accountID int64, p ListParams) ([]*entity.ListingWithDetails, error)
}

// ProspectRepository define el puerto de persistencia para Prospect.
type ProspectRepository interface {
	Scoped[entity.Prospect]
}

// LeadRepository listing contacts (leads cuando contact_type = buyer), aislados a través de contacts.
type LeadRepository interface {
	Scoped[entity.ListingContact]
	// FindBuyerLead lead comprador activo del contacto; sin listing, el primero por id.
	FindBuyerLead(ctx context.Context, accountID, contactID int64, listingID *int64) (*entity.ListingContact, error)
	// LockContact bloquea la fila del contacto hasta el fin de la transacción (FOR UPDATE en PostgreSQL).
	LockContact(ctx context.Context, accountID, contactID int64) error
}

// AppointmentRepository define el puerto de persistencia para Appointment.
type AppointmentRepository interface {
	Scoped[entity.Appointment]
	ListByRange(ctx context.Context, accountID int64, from, to time.Time, userID *int64) ([]*entity.Appointment, error)
}

// TaskRepository define el puerto de persistencia para Task.
type TaskRepository interface {
	Scoped[entity.Task]
	ListOpenByAssignee(ctx context.Context, accountID, userID int64, dueBefore *time.Time) ([]*entity.Task, error)
}

// DocumentRepository define el puerto de persistencia para Document.
type DocumentRepository interface {
	Scoped[entity.Document]
}

// DealRepository define el puerto de persistencia para Deal.
type DealRepository interface {
	Scoped[entity.Deal]
	ListByStatuses(ctx context.Context, accountID int64, statuses []string) ([]*entity.Deal, error)
}

// CommentRepository comentarios con un nivel de respuestas.
type CommentRepository interface {
	Scoped[entity.Comment]
	// ListTopLevel comentarios raíz del vínculo, created_at DESC.
	ListTopLevel(ctx context.Context, accountID int64, link entity.LinkKind, linkID int64) ([]*entity.Comment, error)
	// ListReplies respuestas directas de los padres indicados, created_at ASC.
	ListReplies(ctx context.Context, accountID int64, parentIDs []int64) ([]*entity.Comment, error)
}

// CartelRepository configuraciones de cartel.
type CartelRepository interface {
	Scoped[entity.CartelConfiguration]
	GetDefault(ctx context.Context, accountID int64) (*entity.CartelConfiguration, error)
	ClearDefault(ctx context.Context, accountID int64) error
}

// LocationRepository catálogo global de ubicaciones.
type LocationRepository interface {
	FindOrCreate(ctx context.Context, loc *entity.Location) (*entity.Location, error)
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	Search(ctx context.Context, q string, limit int) ([]*entity.Location, error)
}

// WebsiteConfigRepository configuración de la web pública, una fila por cuenta.
type WebsiteConfigRepository interface {
	GetByAccount(ctx context.Context, accountID int64) (*entity.WebsiteConfiguration, error)
	UpsertSection(ctx context.Context, accountID int64, section entity.WebsiteSection, raw []byte) error
}

// DashboardRepository consultas de solo lectura para el resumen.
type DashboardRepository interface {
	CountListingsByStatus(ctx context.Context, accountID int64) (map[string]int64, error)
	CountLeadsByStatus(ctx context.Context, accountID int64) (map[entity.LeadStatus]int64, error)
	CountAppointmentsBetween(ctx context.Context, accountID int64, from, to time.Time) (int64, error)
}
