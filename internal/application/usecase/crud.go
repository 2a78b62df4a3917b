// Package usecase casos de uso del CRM. Cada método resuelve la cuenta desde la sesión
// y delega en los repositorios aislados por cuenta.
package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// CRUD operaciones con sesión comunes a toda entidad aislada por cuenta.
type CRUD[T any] struct {
	repo     repository.Scoped[T]
	sessions *auth.Resolver
}

func newCRUD[T any](repo repository.Scoped[T], sessions *auth.Resolver) CRUD[T] {
	return CRUD[T]{repo: repo, sessions: sessions}
}

// Get fila activa de la cuenta actual.
func (c CRUD[T]) Get(ctx context.Context, id int64) (*T, error) {
	accountID, err := c.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return c.repo.GetByID(ctx, accountID, id)
}

// List página de filas activas con filtros de igualdad.
func (c CRUD[T]) List(ctx context.Context, page dto.PageRequest, filters map[string]any) (*dto.PageResponse, error) {
	accountID, err := c.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	items, err := c.repo.List(ctx, accountID, repository.ListParams{Page: page.Page, Limit: page.Limit, Filters: filters})
	if err != nil {
		return nil, err
	}
	total, err := c.repo.Count(ctx, accountID, filters)
	if err != nil {
		return nil, err
	}
	limit := page.Limit
	if limit > repository.MaxPageSize {
		limit = repository.MaxPageSize
	}
	return &dto.PageResponse{Items: items, Page: page.Page, Limit: limit, Total: total}, nil
}

// ListBy filas activas cuya columna FK vale value.
func (c CRUD[T]) ListBy(ctx context.Context, column string, value any) ([]*T, error) {
	accountID, err := c.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return c.repo.ListBy(ctx, accountID, column, value)
}

// Delete baja lógica; ErrNotFound si no había fila activa.
func (c CRUD[T]) Delete(ctx context.Context, id int64) error {
	accountID, err := c.sessions.CurrentAccountID(ctx)
	if err != nil {
		return err
	}
	ok, err := c.repo.SoftDelete(ctx, accountID, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (c CRUD[T]) create(ctx context.Context, e *T) (*T, error) {
	accountID, err := c.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return c.repo.Create(ctx, accountID, e)
}

func (c CRUD[T]) update(ctx context.Context, id int64, fields map[string]any) (*T, error) {
	accountID, err := c.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return c.repo.Update(ctx, accountID, id, fields)
}
