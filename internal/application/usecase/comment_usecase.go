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
)

// CommentUseCase comentarios con un nivel de respuestas.
type CommentUseCase struct {
	comments repository.CommentRepository
	sessions *auth.Resolver
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(comments repository.CommentRepository, sessions *auth.Resolver) *CommentUseCase {
	return &CommentUseCase{comments: comments, sessions: sessions}
}

// Create comentario nuevo o respuesta. Responder a una respuesta es un error de validación.
func (uc *CommentUseCase) Create(ctx context.Context, in dto.CommentRequest) (*entity.Comment, error) {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return uc.comments.Create(ctx, user.AccountID, &entity.Comment{
		EntityLink: in.EntityLink,
		UserID:     user.ID,
		ParentID:   in.ParentID,
		Content:    in.Content,
	})
}

// Thread comentarios raíz (recientes primero) con sus respuestas (cronológicas),
// en dos consultas.
func (uc *CommentUseCase) Thread(ctx context.Context, kind entity.LinkKind, linkID int64) ([]*entity.Comment, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	roots, err := uc.comments.ListTopLevel(ctx, accountID, kind, linkID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(roots))
	byID := make(map[int64]*entity.Comment, len(roots))
	for _, c := range roots {
		ids = append(ids, c.ID)
		byID[c.ID] = c
		c.Replies = []*entity.Comment{}
	}
	replies, err := uc.comments.ListReplies(ctx, accountID, ids)
	if err != nil {
		return nil, err
	}
	for _, r := range replies {
		if parent, ok := byID[*r.ParentID]; ok {
			parent.Replies = append(parent.Replies, r)
		}
	}
	return roots, nil
}

// ListByListing hilo de comentarios de un anuncio.
func (uc *CommentUseCase) ListByListing(ctx context.Context, listingID int64) ([]*entity.Comment, error) {
	return uc.Thread(ctx, entity.LinkListing, listingID)
}

// Edit cambia el contenido de un comentario propio.
func (uc *CommentUseCase) Edit(ctx context.Context, id int64, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("contenido vacío: %w", domain.ErrValidation)
	}
	user, err := uc.own(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.comments.Update(ctx, user.AccountID, id, map[string]any{"content": content})
}

// Delete baja lógica de un comentario propio.
func (uc *CommentUseCase) Delete(ctx context.Context, id int64) error {
	user, err := uc.own(ctx, id)
	if err != nil {
		return err
	}
	_, err = uc.comments.SoftDelete(ctx, user.AccountID, id)
	return err
}

// own verifica que el comentario es del usuario actual (los administradores pueden con todos).
func (uc *CommentUseCase) own(ctx context.Context, id int64) (*entity.SessionUser, error) {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	c, err := uc.comments.GetByID(ctx, user.AccountID, id)
	if err != nil {
		return nil, err
	}
	switch {
	case c.UserID == user.ID, user.Role == entity.RoleAccountAdmin, user.Role == entity.RoleSuperAdmin:
		return user, nil
	}
	return nil, domain.ErrForbidden
}
