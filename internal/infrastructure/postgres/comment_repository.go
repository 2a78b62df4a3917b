package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo comentarios con hilos de profundidad entity.MaxCommentDepth.
type CommentRepo struct {
	*scopedRepository[entity.Comment, *entity.Comment]
}

// NewCommentRepository construye el repositorio de comentarios.
func NewCommentRepository(db *gorm.DB) *CommentRepo {
	r := &CommentRepo{scopedRepository: newScopedRepository[entity.Comment](db, "comment")}
	r.prepare = r.prepareComment
	r.references = withLinkColumns(map[string]string{"user_id": "users", "parent_id": "comments"})
	return r
}

// prepareComment una respuesta hereda los vínculos de su padre y no puede colgar de otra respuesta.
func (r *CommentRepo) prepareComment(ctx context.Context, db *gorm.DB, accountID int64, c *entity.Comment) error {
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("contenido vacío: %w", domain.ErrValidation)
	}
	if c.ParentID != nil {
		var parent entity.Comment
		err := db.Scopes(AccountScope(accountID)).
			Where(idEq(*c.ParentID)).Where(activeOnly()).
			Take(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comentario padre %d: %w", *c.ParentID, domain.ErrNotFound)
		}
		if err != nil {
			return wrapErr("get parent comment", err)
		}
		if parent.Depth()+1 > entity.MaxCommentDepth {
			return fmt.Errorf("no se puede responder a una respuesta: %w", domain.ErrValidation)
		}
		c.EntityLink = parent.EntityLink
	} else {
		if len(c.Targets()) == 0 {
			return fmt.Errorf("comentario sin entidad vinculada: %w", domain.ErrValidation)
		}
		if err := ensureLinks(ctx, db, accountID, c.EntityLink); err != nil {
			return err
		}
	}
	return setOwner(ctx, db, accountID, c)
}

// ListTopLevel comentarios raíz del vínculo, más recientes primero.
func (r *CommentRepo) ListTopLevel(ctx context.Context, accountID int64, link entity.LinkKind, linkID int64) ([]*entity.Comment, error) {
	column := link.Column()
	if column == "" {
		return nil, fmt.Errorf("vínculo %q: %w", link, domain.ErrValidation)
	}
	order := clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: col("created_at"), Desc: true},
		{Column: col("id"), Desc: true},
	}}
	return r.find(ctx, "list comments", accountID, order,
		clause.Eq{Column: col(column), Value: linkID},
		clause.Eq{Column: col("parent_id"), Value: nil},
		activeOnly())
}

// ListReplies respuestas de los padres indicados en orden cronológico.
func (r *CommentRepo) ListReplies(ctx context.Context, accountID int64, parentIDs []int64) ([]*entity.Comment, error) {
	if len(parentIDs) == 0 {
		return []*entity.Comment{}, nil
	}
	order := clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: col("created_at")},
		{Column: col("id")},
	}}
	return r.find(ctx, "list replies", accountID, order,
		filterExpr("parent_id", parentIDs), activeOnly())
}
