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

func TestComment_HiloConRespuestas(t *testing.T) {
	f := setup(t)
	uc := usecase.NewCommentUseCase(f.env.Repos.Comments, f.sessions)
	l := f.env.Listing(t, f.tn)
	link := entity.EntityLink{ListingID: &l.ID}

	root, err := uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, Content: "¿Bajamos el precio?"})
	require.NoError(t, err)
	_, err = uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, ParentID: &root.ID, Content: "Esperemos una semana"})
	require.NoError(t, err)
	_, err = uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, ParentID: &root.ID, Content: "De acuerdo"})
	require.NoError(t, err)
	second, err := uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, Content: "Fotos nuevas subidas"})
	require.NoError(t, err)

	thread, err := uc.ListByListing(f.ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	// raíces recientes primero, respuestas en orden cronológico
	assert.Equal(t, second.ID, thread[0].ID)
	assert.Empty(t, thread[0].Replies)
	require.Len(t, thread[1].Replies, 2)
	assert.Equal(t, "Esperemos una semana", thread[1].Replies[0].Content)
	assert.Equal(t, "De acuerdo", thread[1].Replies[1].Content)
}

func TestComment_NoSeRespondeAUnaRespuesta(t *testing.T) {
	f := setup(t)
	uc := usecase.NewCommentUseCase(f.env.Repos.Comments, f.sessions)
	l := f.env.Listing(t, f.tn)
	link := entity.EntityLink{ListingID: &l.ID}

	root, err := uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, Content: "raíz"})
	require.NoError(t, err)
	reply, err := uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, ParentID: &root.ID, Content: "respuesta"})
	require.NoError(t, err)

	_, err = uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, ParentID: &reply.ID, Content: "anidado"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestComment_EditarYBorrarSoloAutorOAdmin(t *testing.T) {
	f := setup(t)
	uc := usecase.NewCommentUseCase(f.env.Repos.Comments, f.sessions)
	l := f.env.Listing(t, f.tn)

	c, err := uc.Create(f.ctx, dto.CommentRequest{EntityLink: entity.EntityLink{ListingID: &l.ID}, Content: "original"})
	require.NoError(t, err)

	colleague := f.tn.Session(entity.RoleAgent)
	colleague.User.ID = f.tn.Agent.ID + 1000
	_, err = uc.Edit(withSession(colleague), c.ID, "cambiado")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.KindAccountMismatch, domain.KindOf(err))

	edited, err := uc.Edit(f.ctx, c.ID, "corregido")
	require.NoError(t, err)
	assert.Equal(t, "corregido", edited.Content)

	_, err = uc.Edit(f.ctx, c.ID, "   ")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	admin := f.tn.Session(entity.RoleAccountAdmin)
	admin.User.ID = f.tn.Agent.ID + 2000
	require.NoError(t, uc.Delete(withSession(admin), c.ID))

	thread, err := uc.ListByListing(f.ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, thread)
}

func TestComment_SuperAdminModera(t *testing.T) {
	f := setup(t)
	uc := usecase.NewCommentUseCase(f.env.Repos.Comments, f.sessions)
	l := f.env.Listing(t, f.tn)
	link := entity.EntityLink{ListingID: &l.ID}

	first, err := uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, Content: "precio alto"})
	require.NoError(t, err)
	second, err := uc.Create(f.ctx, dto.CommentRequest{EntityLink: link, Content: "spam"})
	require.NoError(t, err)

	support := f.tn.Session(entity.RoleSuperAdmin)
	support.User.ID = f.tn.Agent.ID + 3000

	edited, err := uc.Edit(withSession(support), first.ID, "precio revisado")
	require.NoError(t, err)
	assert.Equal(t, "precio revisado", edited.Content)
	require.NoError(t, uc.Delete(withSession(support), second.ID))

	thread, err := uc.ListByListing(f.ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, first.ID, thread[0].ID)
}
