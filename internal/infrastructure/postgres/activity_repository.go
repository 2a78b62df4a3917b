package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var (
	_ repository.AppointmentRepository = (*AppointmentRepo)(nil)
	_ repository.TaskRepository        = (*TaskRepo)(nil)
	_ repository.DocumentRepository    = (*DocumentRepo)(nil)
	_ repository.DealRepository        = (*DealRepo)(nil)
)

// linkTables tabla de cada tipo de vínculo.
var linkTables = map[entity.LinkKind]string{
	entity.LinkListing:     "listings",
	entity.LinkContact:     "contacts",
	entity.LinkDeal:        "deals",
	entity.LinkAppointment: "appointments",
	entity.LinkProspect:    "prospects",
}

// ensureLinks verifica que cada entidad vinculada es de la cuenta.
func ensureLinks(ctx context.Context, db *gorm.DB, accountID int64, link entity.EntityLink) error {
	for kind, id := range link.Targets() {
		if err := ensureOwned(ctx, db, linkTables[kind], id, accountID); err != nil {
			return err
		}
	}
	return nil
}

// withLinkColumns añade las columnas de entity.EntityLink a las claves ajenas propias.
func withLinkColumns(refs map[string]string) map[string]string {
	out := make(map[string]string, len(refs)+len(linkTables))
	for k, v := range refs {
		out[k] = v
	}
	for kind, table := range linkTables {
		out[kind.Column()] = table
	}
	return out
}

// AppointmentRepo citas (visitas, reuniones, firmas).
type AppointmentRepo struct {
	*scopedRepository[entity.Appointment, *entity.Appointment]
}

// NewAppointmentRepository construye el repositorio de citas.
func NewAppointmentRepository(db *gorm.DB) *AppointmentRepo {
	base := newScopedRepository[entity.Appointment](db, "appointment")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, a *entity.Appointment) error {
		if a.Status == "" {
			a.Status = entity.AppointmentScheduled
		}
		if !a.Status.IsValid() {
			return fmt.Errorf("estado de cita %q: %w", a.Status, domain.ErrValidation)
		}
		if a.VisitOutcome != nil && !a.VisitOutcome.IsValid() {
			return fmt.Errorf("resultado de visita %q: %w", *a.VisitOutcome, domain.ErrValidation)
		}
		if a.StartsAt.IsZero() || a.EndsAt.Before(a.StartsAt) {
			return fmt.Errorf("intervalo de cita inválido: %w", domain.ErrValidation)
		}
		link := entity.EntityLink{ContactID: &a.ContactID, ListingID: a.ListingID, DealID: a.DealID, ProspectID: a.ProspectID}
		if err := ensureLinks(ctx, db, accountID, link); err != nil {
			return err
		}
		if err := ensureOwned(ctx, db, "users", a.UserID, accountID); err != nil {
			return err
		}
		return setOwner(ctx, db, accountID, a)
	}
	base.references = withLinkColumns(map[string]string{"user_id": "users"})
	return &AppointmentRepo{scopedRepository: base}
}

// Update valida el estado antes de escribir.
func (r *AppointmentRepo) Update(ctx context.Context, accountID, id int64, fields map[string]any) (*entity.Appointment, error) {
	if v, ok := fields["status"]; ok {
		s, isStatus := v.(entity.AppointmentStatus)
		if str, isStr := v.(string); isStr {
			s, isStatus = entity.AppointmentStatus(str), true
		}
		if !isStatus || !s.IsValid() {
			return nil, fmt.Errorf("update appointment: estado %v: %w", v, domain.ErrValidation)
		}
		fields["status"] = s
	}
	return r.scopedRepository.Update(ctx, accountID, id, fields)
}

// ListByRange citas activas que empiezan en [from, to), opcionalmente de un usuario.
func (r *AppointmentRepo) ListByRange(ctx context.Context, accountID int64, from, to time.Time, userID *int64) ([]*entity.Appointment, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("list appointments: rango vacío: %w", domain.ErrValidation)
	}
	exprs := []clause.Expression{
		clause.Gte{Column: col("starts_at"), Value: from},
		clause.Lt{Column: col("starts_at"), Value: to},
		activeOnly(),
	}
	if userID != nil {
		exprs = append(exprs, clause.Eq{Column: col("user_id"), Value: *userID})
	}
	return r.find(ctx, "list appointments by range", accountID,
		clause.OrderBy{Columns: []clause.OrderByColumn{{Column: col("starts_at")}, {Column: col("id")}}},
		exprs...)
}

// TaskRepo tareas asignadas a usuarios.
type TaskRepo struct {
	*scopedRepository[entity.Task, *entity.Task]
}

// NewTaskRepository construye el repositorio de tareas.
func NewTaskRepository(db *gorm.DB) *TaskRepo {
	base := newScopedRepository[entity.Task](db, "task")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, t *entity.Task) error {
		if t.Title == "" {
			return fmt.Errorf("título obligatorio: %w", domain.ErrValidation)
		}
		if err := ensureLinks(ctx, db, accountID, t.EntityLink); err != nil {
			return err
		}
		if err := ensureOwned(ctx, db, "users", t.AssignedTo, accountID); err != nil {
			return err
		}
		return setOwner(ctx, db, accountID, t)
	}
	base.references = withLinkColumns(map[string]string{"assigned_to": "users"})
	return &TaskRepo{scopedRepository: base}
}

// ListOpenByAssignee tareas pendientes del usuario por fecha de vencimiento; sin fecha al final.
func (r *TaskRepo) ListOpenByAssignee(ctx context.Context, accountID, userID int64, dueBefore *time.Time) ([]*entity.Task, error) {
	exprs := []clause.Expression{
		clause.Eq{Column: col("assigned_to"), Value: userID},
		clause.Eq{Column: col("completed"), Value: false},
		activeOnly(),
	}
	if dueBefore != nil {
		exprs = append(exprs, clause.Lt{Column: col("due_date"), Value: *dueBefore})
	}
	order := clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "CASE WHEN due_date IS NULL THEN 1 ELSE 0 END", Raw: true}},
		{Column: col("due_date")},
		{Column: col("id")},
	}}
	return r.find(ctx, "list open tasks", accountID, order, exprs...)
}

// DocumentRepo metadatos de documentos; el binario vive en el BlobStore.
type DocumentRepo struct {
	*scopedRepository[entity.Document, *entity.Document]
}

// NewDocumentRepository construye el repositorio de documentos.
func NewDocumentRepository(db *gorm.DB) *DocumentRepo {
	base := newScopedRepository[entity.Document](db, "document")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, d *entity.Document) error {
		if d.Filename == "" || d.URL == "" {
			return fmt.Errorf("nombre y url obligatorios: %w", domain.ErrValidation)
		}
		if err := ensureLinks(ctx, db, accountID, d.EntityLink); err != nil {
			return err
		}
		return setOwner(ctx, db, accountID, d)
	}
	base.references = withLinkColumns(nil)
	return &DocumentRepo{scopedRepository: base}
}

// DealRepo operaciones (ofertas, arras, cierres).
type DealRepo struct {
	*scopedRepository[entity.Deal, *entity.Deal]
}

// NewDealRepository construye el repositorio de operaciones.
func NewDealRepository(db *gorm.DB) *DealRepo {
	base := newScopedRepository[entity.Deal](db, "deal")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, d *entity.Deal) error {
		if d.Status == "" {
			d.Status = entity.DealStatusOffer
		}
		if !entity.IsValidDealStatus(d.Status) {
			return fmt.Errorf("estado de operación %q: %w", d.Status, domain.ErrValidation)
		}
		if d.Amount.IsNegative() {
			return fmt.Errorf("importe negativo: %w", domain.ErrValidation)
		}
		link := entity.EntityLink{ListingID: &d.ListingID, ContactID: d.ContactID}
		if err := ensureLinks(ctx, db, accountID, link); err != nil {
			return err
		}
		return setOwner(ctx, db, accountID, d)
	}
	base.references = map[string]string{"listing_id": "listings", "contact_id": "contacts"}
	return &DealRepo{scopedRepository: base}
}

// Update valida el estado antes de escribir.
func (r *DealRepo) Update(ctx context.Context, accountID, id int64, fields map[string]any) (*entity.Deal, error) {
	if v, ok := fields["status"].(string); ok && !entity.IsValidDealStatus(v) {
		return nil, fmt.Errorf("update deal: estado %q: %w", v, domain.ErrValidation)
	}
	return r.scopedRepository.Update(ctx, accountID, id, fields)
}

// ListByStatuses operaciones activas en alguno de los estados.
func (r *DealRepo) ListByStatuses(ctx context.Context, accountID int64, statuses []string) ([]*entity.Deal, error) {
	if len(statuses) == 0 {
		return []*entity.Deal{}, nil
	}
	return r.find(ctx, "list deals by status", accountID, orderByID,
		filterExpr("status", statuses), activeOnly())
}
