package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/commission"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

func linkColumn(kind entity.LinkKind) (string, error) {
	column := kind.Column()
	if column == "" {
		return "", fmt.Errorf("tipo de vínculo %q: %w", kind, domain.ErrValidation)
	}
	return column, nil
}

// ── Tareas ──

// TaskUseCase tareas asignadas.
type TaskUseCase struct {
	CRUD[entity.Task]
	tasks repository.TaskRepository
	now   func() time.Time
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(tasks repository.TaskRepository, sessions *auth.Resolver) *TaskUseCase {
	return &TaskUseCase{CRUD: newCRUD[entity.Task](tasks, sessions), tasks: tasks, now: time.Now}
}

// Create alta; sin asignado se asigna al usuario actual.
func (uc *TaskUseCase) Create(ctx context.Context, t *entity.Task) (*entity.Task, error) {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if t.AssignedTo == 0 {
		t.AssignedTo = user.ID
	}
	t.Completed, t.CompletedAt = false, nil
	return uc.tasks.Create(ctx, user.AccountID, t)
}

// Update actualización parcial.
func (uc *TaskUseCase) Update(ctx context.Context, id int64, patch dto.TaskPatch) (*entity.Task, error) {
	return uc.update(ctx, id, dto.PatchFields(patch))
}

// Complete marca la tarea como hecha.
func (uc *TaskUseCase) Complete(ctx context.Context, id int64) (*entity.Task, error) {
	return uc.update(ctx, id, map[string]any{"completed": true, "completed_at": uc.now().UTC()})
}

// ListByAssignee tareas abiertas del usuario, opcionalmente con vencimiento anterior a dueBefore.
func (uc *TaskUseCase) ListByAssignee(ctx context.Context, userID int64, dueBefore *time.Time) ([]*entity.Task, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.tasks.ListOpenByAssignee(ctx, accountID, userID, dueBefore)
}

// ListByLink tareas vinculadas a una entidad.
func (uc *TaskUseCase) ListByLink(ctx context.Context, kind entity.LinkKind, id int64) ([]*entity.Task, error) {
	column, err := linkColumn(kind)
	if err != nil {
		return nil, err
	}
	return uc.ListBy(ctx, column, id)
}

// ── Documentos ──

// DocumentUseCase documentos almacenados en el BlobStore.
type DocumentUseCase struct {
	CRUD[entity.Document]
	documents repository.DocumentRepository
	blobs     ports.BlobStore
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(documents repository.DocumentRepository, blobs ports.BlobStore, sessions *auth.Resolver) *DocumentUseCase {
	return &DocumentUseCase{CRUD: newCRUD[entity.Document](documents, sessions), documents: documents, blobs: blobs}
}

// Upload sube el fichero y registra el documento. Si el registro falla se borra el objeto subido.
func (uc *DocumentUseCase) Upload(ctx context.Context, in dto.DocumentUpload, body io.Reader) (*entity.Document, error) {
	if uc.blobs == nil {
		return nil, fmt.Errorf("almacenamiento de ficheros no configurado: %w", domain.ErrTransient)
	}
	if in.Filename == "" {
		return nil, fmt.Errorf("filename obligatorio: %w", domain.ErrValidation)
	}
	if len(in.EntityLink.Targets()) == 0 {
		return nil, fmt.Errorf("el documento debe vincularse a una entidad: %w", domain.ErrValidation)
	}
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("accounts/%d/documents/%s%s", user.AccountID, uuid.NewString(), path.Ext(in.Filename))
	url, err := uc.blobs.Put(ctx, key, in.ContentType, body, in.Size)
	if err != nil {
		return nil, fmt.Errorf("subir documento: %w", err)
	}
	doc, err := uc.documents.Create(ctx, user.AccountID, &entity.Document{
		EntityLink:   in.EntityLink,
		Filename:     in.Filename,
		ContentType:  in.ContentType,
		FileSize:     in.Size,
		URL:          url,
		StorageKey:   key,
		DocumentType: in.DocumentType,
		UploadedBy:   user.ID,
	})
	if err != nil {
		_ = uc.blobs.Delete(ctx, key)
		return nil, err
	}
	return doc, nil
}

// ListByLink documentos vinculados a una entidad.
func (uc *DocumentUseCase) ListByLink(ctx context.Context, kind entity.LinkKind, id int64) ([]*entity.Document, error) {
	column, err := linkColumn(kind)
	if err != nil {
		return nil, err
	}
	return uc.ListBy(ctx, column, id)
}

// ── Operaciones ──

// DealUseCase operaciones con cálculo de honorarios.
type DealUseCase struct {
	CRUD[entity.Deal]
	deals repository.DealRepository
}

// NewDealUseCase construye el caso de uso.
func NewDealUseCase(deals repository.DealRepository, sessions *auth.Resolver) *DealUseCase {
	return &DealUseCase{CRUD: newCRUD[entity.Deal](deals, sessions), deals: deals}
}

// Create alta; los honorarios se calculan a partir del importe y el porcentaje.
func (uc *DealUseCase) Create(ctx context.Context, d *entity.Deal) (*entity.Deal, error) {
	if d.CommissionPercent.IsNegative() {
		return nil, fmt.Errorf("commission_percent no puede ser negativo: %w", domain.ErrValidation)
	}
	d.CommissionAmount = commission.Calculate(d.Amount, d.CommissionPercent, decimal.Zero)
	return uc.create(ctx, d)
}

// Update actualización parcial; recalcula honorarios si cambia importe o porcentaje.
func (uc *DealUseCase) Update(ctx context.Context, id int64, patch dto.DealPatch) (*entity.Deal, error) {
	fields := dto.PatchFields(patch)
	if patch.Amount != nil || patch.CommissionPercent != nil {
		current, err := uc.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		amount, percent := current.Amount, current.CommissionPercent
		if patch.Amount != nil {
			amount = *patch.Amount
		}
		if patch.CommissionPercent != nil {
			percent = *patch.CommissionPercent
		}
		if amount.IsNegative() || percent.IsNegative() {
			return nil, fmt.Errorf("importe y porcentaje no pueden ser negativos: %w", domain.ErrValidation)
		}
		fields["commission_amount"] = commission.Calculate(amount, percent, decimal.Zero)
	}
	return uc.update(ctx, id, fields)
}

// ListOpen operaciones en curso (Offer, UnderContract).
func (uc *DealUseCase) ListOpen(ctx context.Context) ([]*entity.Deal, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.deals.ListByStatuses(ctx, accountID, []string{entity.DealStatusOffer, entity.DealStatusUnderContract})
}

// ListByListing operaciones de un anuncio.
func (uc *DealUseCase) ListByListing(ctx context.Context, listingID int64) ([]*entity.Deal, error) {
	return uc.ListBy(ctx, "listing_id", listingID)
}
