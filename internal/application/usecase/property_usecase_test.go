package usecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

func TestPropertyCreate_TipoPorDefecto(t *testing.T) {
	f := setup(t)
	uc := usecase.NewPropertyUseCase(f.env.Repos, nil, f.sessions)

	p, err := uc.Create(f.ctx, &entity.Property{Title: "Ático", City: "Valencia"})
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyTypePiso, p.PropertyType)
	assert.Equal(t, f.tn.ID(), p.AccountID)
}

func TestPropertyUpdate_PropietarioDeOtraCuenta(t *testing.T) {
	f := setup(t)
	uc := usecase.NewPropertyUseCase(f.env.Repos, nil, f.sessions)
	p, err := uc.Create(f.ctx, &entity.Property{Title: "Casa", PropertyType: entity.PropertyTypeCasa})
	require.NoError(t, err)

	other := f.env.NewTenant(t, "rio")
	foreign := f.env.Contact(t, other, "Ajeno")
	_, err = uc.Update(f.ctx, p.ID, dto.PropertyPatch{OwnerContactID: &foreign.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	owner := f.env.Contact(t, f.tn, "Dueña")
	ref := " 9872023vh5797s0001wx "
	updated, err := uc.Update(f.ctx, p.ID, dto.PropertyPatch{OwnerContactID: &owner.ID, CadastralReference: &ref})
	require.NoError(t, err)
	assert.Equal(t, "9872023VH5797S0001WX", updated.CadastralReference)
	require.NotNil(t, updated.OwnerContactID)
	assert.Equal(t, owner.ID, *updated.OwnerContactID)
}

// ── Imágenes ──

func TestPropertyUploadImage_SubeYRegistra(t *testing.T) {
	f := setup(t)
	blobs := &mockBlobs{}
	uc := usecase.NewPropertyUseCase(f.env.Repos, blobs, f.sessions)
	l := f.env.Listing(t, f.tn)

	blobs.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "accounts/") && strings.HasSuffix(key, ".jpg")
	}), "image/jpeg", mock.Anything, int64(4)).
		Return("https://cdn.ejemplo.es/foto.jpg", nil).Twice()

	first, err := uc.UploadImage(f.ctx, l.PropertyID, "salon.jpg", "image/jpeg", strings.NewReader("jpeg"), 4)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.ejemplo.es/foto.jpg", first.URL)
	assert.Equal(t, 0, first.SortOrder)

	second, err := uc.UploadImage(f.ctx, l.PropertyID, "cocina.jpg", "image/jpeg", strings.NewReader("jpeg"), 4)
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)

	imgs, err := uc.ListImages(f.ctx, l.PropertyID)
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
	blobs.AssertExpectations(t)
}

func TestPropertyUploadImage_Errores(t *testing.T) {
	f := setup(t)
	l := f.env.Listing(t, f.tn)

	_, err := usecase.NewPropertyUseCase(f.env.Repos, nil, f.sessions).
		UploadImage(f.ctx, l.PropertyID, "a.jpg", "image/jpeg", strings.NewReader("x"), 1)
	assert.Equal(t, domain.KindTransient, domain.KindOf(err), "sin almacenamiento")

	blobs := &mockBlobs{}
	uc := usecase.NewPropertyUseCase(f.env.Repos, blobs, f.sessions)
	_, err = uc.UploadImage(f.ctx, l.PropertyID, "a.pdf", "application/pdf", strings.NewReader("x"), 1)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "no es imagen")

	_, err = uc.UploadImage(f.ctx, l.PropertyID+100, "a.jpg", "image/jpeg", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	blobs.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("s3 caído"))
	_, err = uc.UploadImage(f.ctx, l.PropertyID, "a.jpg", "image/jpeg", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3 caído")
}

func TestPropertyReorderImages(t *testing.T) {
	f := setup(t)
	uc := usecase.NewPropertyUseCase(f.env.Repos, nil, f.sessions)
	l := f.env.Listing(t, f.tn)

	a, err := uc.AddImage(f.ctx, l.PropertyID, dto.PropertyImageRequest{URL: "https://x/a.jpg"})
	require.NoError(t, err)
	b, err := uc.AddImage(f.ctx, l.PropertyID, dto.PropertyImageRequest{URL: "https://x/b.jpg", SortOrder: 1})
	require.NoError(t, err)

	imgs, err := uc.ReorderImages(f.ctx, l.PropertyID, dto.ReorderImagesRequest{ImageIDs: []int64{b.ID, a.ID}})
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	assert.Equal(t, b.ID, imgs[0].ID)
	assert.Equal(t, a.ID, imgs[1].ID)

	_, err = uc.ReorderImages(f.ctx, l.PropertyID, dto.ReorderImagesRequest{})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	require.NoError(t, uc.DeleteImage(f.ctx, a.ID))
	assert.ErrorIs(t, uc.DeleteImage(f.ctx, a.ID), domain.ErrNotFound)
}
