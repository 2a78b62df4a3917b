package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

func newContacts(f fixture) *usecase.ContactUseCase {
	return usecase.NewContactUseCase(f.env.Repos.Contacts, f.env.Repos.UserComments, f.sessions)
}

func TestContactCreate_NormalizaNIF(t *testing.T) {
	f := setup(t)
	uc := newContacts(f)

	c, err := uc.Create(f.ctx, &entity.Contact{FirstName: "Elena", NIF: "12345678-z"})
	require.NoError(t, err)
	assert.Equal(t, "12345678Z", c.NIF)

	_, err = uc.Create(f.ctx, &entity.Contact{FirstName: "Elena", NIF: "12345678A"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "letra de control incorrecta")

	_, err = uc.Create(f.ctx, &entity.Contact{FirstName: "  "})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	sinNIF, err := uc.Create(f.ctx, &entity.Contact{FirstName: "Tomás"})
	require.NoError(t, err)
	assert.Empty(t, sinNIF.NIF)
}

func TestContactUpdate(t *testing.T) {
	f := setup(t)
	uc := newContacts(f)
	c := f.env.Contact(t, f.tn, "Alba")

	bad := "X0000000A"
	_, err := uc.Update(f.ctx, c.ID, dto.ContactPatch{NIF: &bad})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	phone := "+34 600 111 222"
	updated, err := uc.Update(f.ctx, c.ID, dto.ContactPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Alba", updated.FirstName)

	other := f.env.NewTenant(t, "nube")
	_, err = uc.Update(as(other, entity.RoleAgent), c.ID, dto.ContactPatch{Phone: &phone})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactList_AisladoPorCuenta(t *testing.T) {
	f := setup(t)
	uc := newContacts(f)
	f.env.Contact(t, f.tn, "Uno")
	f.env.Contact(t, f.tn, "Dos")
	other := f.env.NewTenant(t, "cielo")
	f.env.Contact(t, other, "Tres")

	page, err := uc.List(f.ctx, dto.PageRequest{}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)

	page, err = uc.List(as(other, entity.RoleAgent), dto.PageRequest{}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

// ── Notas privadas ──

func TestContactNotes_SoloElAutorBorra(t *testing.T) {
	f := setup(t)
	uc := newContacts(f)
	c := f.env.Contact(t, f.tn, "Rocío")

	note, err := uc.AddNote(f.ctx, c.ID, dto.UserCommentRequest{Content: "prefiere llamadas por la tarde"})
	require.NoError(t, err)
	assert.Equal(t, f.tn.Agent.ID, note.UserID)

	_, err = uc.AddNote(f.ctx, c.ID, dto.UserCommentRequest{Content: " "})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	// otro usuario de la misma cuenta
	sess := f.tn.Session(entity.RoleAgent)
	sess.User.ID = f.tn.Agent.ID + 1000
	err = uc.DeleteNote(withSession(sess), note.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	notes, err := uc.ListNotes(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	require.NoError(t, uc.DeleteNote(f.ctx, note.ID))
	notes, err = uc.ListNotes(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
