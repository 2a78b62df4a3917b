package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// PropertyUseCase inmuebles y sus imágenes.
type PropertyUseCase struct {
	CRUD[entity.Property]
	properties repository.PropertyRepository
	images     repository.PropertyImageRepository
	contacts   repository.ContactRepository
	blobs      ports.BlobStore
}

// NewPropertyUseCase construye el caso de uso. blobs puede ser nil si no hay almacenamiento configurado.
func NewPropertyUseCase(repos repository.Repos, blobs ports.BlobStore, sessions *auth.Resolver) *PropertyUseCase {
	return &PropertyUseCase{
		CRUD:       newCRUD[entity.Property](repos.Properties, sessions),
		properties: repos.Properties,
		images:     repos.PropertyImages,
		contacts:   repos.Contacts,
		blobs:      blobs,
	}
}

// Create alta de inmueble.
func (uc *PropertyUseCase) Create(ctx context.Context, p *entity.Property) (*entity.Property, error) {
	if p.PropertyType == "" {
		p.PropertyType = entity.PropertyTypePiso
	}
	if p.CommunityFees != nil && p.CommunityFees.IsNegative() {
		return nil, fmt.Errorf("community_fees no puede ser negativo: %w", domain.ErrValidation)
	}
	return uc.create(ctx, p)
}

// Update actualización parcial.
func (uc *PropertyUseCase) Update(ctx context.Context, id int64, patch dto.PropertyPatch) (*entity.Property, error) {
	fields := dto.PatchFields(patch)
	if patch.CadastralReference != nil {
		fields["cadastral_reference"] = strings.ToUpper(strings.TrimSpace(*patch.CadastralReference))
	}
	if patch.OwnerContactID != nil {
		accountID, err := uc.sessions.CurrentAccountID(ctx)
		if err != nil {
			return nil, err
		}
		if err := uc.verifyOwner(ctx, accountID, *patch.OwnerContactID); err != nil {
			return nil, err
		}
	}
	return uc.update(ctx, id, fields)
}

// GetByCadastralReference inmueble activo con esa referencia catastral.
func (uc *PropertyUseCase) GetByCadastralReference(ctx context.Context, ref string) (*entity.Property, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.properties.GetByCadastralReference(ctx, accountID, ref)
}

// verifyOwner el contacto propietario debe existir en la cuenta.
func (uc *PropertyUseCase) verifyOwner(ctx context.Context, accountID, contactID int64) error {
	if _, err := uc.contacts.GetByID(ctx, accountID, contactID); err != nil {
		return fmt.Errorf("owner_contact_id %d: %w", contactID, err)
	}
	return nil
}

// ── Imágenes ──

// AddImage registra una imagen ya subida. ErrAccountMismatch si el inmueble es de otra cuenta.
func (uc *PropertyUseCase) AddImage(ctx context.Context, propertyID int64, in dto.PropertyImageRequest) (*entity.PropertyImage, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.images.Create(ctx, accountID, &entity.PropertyImage{
		PropertyID: propertyID,
		URL:        in.URL,
		Caption:    in.Caption,
		SortOrder:  in.SortOrder,
	})
}

// UploadImage sube el fichero al almacén y registra la imagen al final del orden actual.
func (uc *PropertyUseCase) UploadImage(ctx context.Context, propertyID int64, filename, contentType string, body io.Reader, size int64) (*entity.PropertyImage, error) {
	if uc.blobs == nil {
		return nil, fmt.Errorf("almacenamiento de ficheros no configurado: %w", domain.ErrTransient)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("tipo %q no es una imagen: %w", contentType, domain.ErrValidation)
	}
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := uc.properties.GetByID(ctx, accountID, propertyID); err != nil {
		return nil, err
	}
	current, err := uc.images.ListByProperty(ctx, accountID, propertyID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("accounts/%d/properties/%d/%s%s", accountID, propertyID, uuid.NewString(), path.Ext(filename))
	url, err := uc.blobs.Put(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	img, err := uc.images.Create(ctx, accountID, &entity.PropertyImage{
		PropertyID: propertyID,
		URL:        url,
		StorageKey: key,
		SortOrder:  len(current),
	})
	if err != nil {
		_ = uc.blobs.Delete(ctx, key)
		return nil, err
	}
	return img, nil
}

// ListImages imágenes activas por sort_order.
func (uc *PropertyUseCase) ListImages(ctx context.Context, propertyID int64) ([]*entity.PropertyImage, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return uc.images.ListByProperty(ctx, accountID, propertyID)
}

// ReorderImages fija el orden de las imágenes del inmueble.
func (uc *PropertyUseCase) ReorderImages(ctx context.Context, propertyID int64, in dto.ReorderImagesRequest) ([]*entity.PropertyImage, error) {
	if len(in.ImageIDs) == 0 {
		return nil, fmt.Errorf("image_ids vacío: %w", domain.ErrValidation)
	}
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.images.Reorder(ctx, accountID, propertyID, in.ImageIDs); err != nil {
		return nil, err
	}
	return uc.images.ListByProperty(ctx, accountID, propertyID)
}

// DeleteImage baja lógica de una imagen.
func (uc *PropertyUseCase) DeleteImage(ctx context.Context, imageID int64) error {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return err
	}
	ok, err := uc.images.SoftDelete(ctx, accountID, imageID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete image %d: %w", imageID, domain.ErrNotFound)
	}
	return nil
}
