package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
	"github.com/jhoicas/crm-inmobiliario/pkg/nif"
)

// ContactUseCase contactos y sus notas privadas.
type ContactUseCase struct {
	CRUD[entity.Contact]
	contacts repository.ContactRepository
	notes    repository.UserCommentRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(contacts repository.ContactRepository, notes repository.UserCommentRepository, sessions *auth.Resolver) *ContactUseCase {
	return &ContactUseCase{CRUD: newCRUD[entity.Contact](contacts, sessions), contacts: contacts, notes: notes}
}

// normalizeNIF valida DNI/NIE/CIF y lo devuelve normalizado; vacío se acepta.
func normalizeNIF(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", nil
	}
	if _, err := nif.Validate(id); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	return nif.Normalize(id), nil
}

// Create alta de contacto.
func (uc *ContactUseCase) Create(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	if strings.TrimSpace(c.FirstName) == "" {
		return nil, fmt.Errorf("first_name obligatorio: %w", domain.ErrValidation)
	}
	id, err := normalizeNIF(c.NIF)
	if err != nil {
		return nil, err
	}
	c.NIF = id
	return uc.create(ctx, c)
}

// Update actualización parcial.
func (uc *ContactUseCase) Update(ctx context.Context, id int64, patch dto.ContactPatch) (*entity.Contact, error) {
	fields := dto.PatchFields(patch)
	if patch.NIF != nil {
		n, err := normalizeNIF(*patch.NIF)
		if err != nil {
			return nil, err
		}
		fields["nif"] = n
	}
	if patch.FirstName != nil && strings.TrimSpace(*patch.FirstName) == "" {
		return nil, fmt.Errorf("first_name obligatorio: %w", domain.ErrValidation)
	}
	return uc.update(ctx, id, fields)
}

// Search búsqueda sin acentos por nombre, email o teléfono.
func (uc *ContactUseCase) Search(ctx context.Context, q string, limit int) ([]*entity.Contact, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.contacts.Search(ctx, accountID, q, limit)
}

// ── Notas privadas ──

// AddNote nota del usuario actual sobre un contacto.
func (uc *ContactUseCase) AddNote(ctx context.Context, contactID int64, in dto.UserCommentRequest) (*entity.UserComment, error) {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("content obligatorio: %w", domain.ErrValidation)
	}
	return uc.notes.Create(ctx, user.AccountID, &entity.UserComment{
		UserID:    user.ID,
		ContactID: contactID,
		Content:   in.Content,
	})
}

// ListNotes notas del contacto, en orden de creación.
func (uc *ContactUseCase) ListNotes(ctx context.Context, contactID int64) ([]*entity.UserComment, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.notes.ListBy(ctx, accountID, "contact_id", contactID)
}

// DeleteNote borra una nota propia.
func (uc *ContactUseCase) DeleteNote(ctx context.Context, noteID int64) error {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return err
	}
	note, err := uc.notes.GetByID(ctx, user.AccountID, noteID)
	if err != nil {
		return err
	}
	if note.UserID != user.ID {
		return domain.ErrForbidden
	}
	_, err = uc.notes.SoftDelete(ctx, user.AccountID, noteID)
	return err
}
