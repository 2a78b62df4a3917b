package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// ErrNoDefaultCartel no hay configuración de cartel por defecto. Se clasifica como domain.ErrNotFound
// pero su texto es exactamente el que muestra el cliente.
var ErrNoDefaultCartel error = noDefaultCartelError{}

type noDefaultCartelError struct{}

func (noDefaultCartelError) Error() string { return "No default configuration found" }

func (noDefaultCartelError) Unwrap() error { return domain.ErrNotFound }

// CartelUseCase plantillas de cartel; como mucho una por cuenta es la predeterminada.
type CartelUseCase struct {
	carteles repository.CartelRepository
	tx       ports.TxRunner
	sessions *auth.Resolver
}

// NewCartelUseCase construye el caso de uso.
func NewCartelUseCase(carteles repository.CartelRepository, tx ports.TxRunner, sessions *auth.Resolver) *CartelUseCase {
	return &CartelUseCase{carteles: carteles, tx: tx, sessions: sessions}
}

func encodeCartelSettings(s entity.CartelSettings) (datatypes.JSON, error) {
	if s.Version == 0 {
		s.Version = entity.CartelSettingsVersion
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// toCartelResponse decodifica y valida los ajustes almacenados.
func toCartelResponse(c *entity.CartelConfiguration) (*dto.CartelResponse, error) {
	typed, err := entity.DecodeCartelSettings(c.Settings)
	if err != nil {
		return nil, fmt.Errorf("cartel %d: %v: %w", c.ID, err, domain.ErrValidation)
	}
	return &dto.CartelResponse{CartelConfiguration: *c, Typed: typed}, nil
}

// Create alta; con is_default se desmarca la anterior en la misma transacción.
func (uc *CartelUseCase) Create(ctx context.Context, in dto.CartelRequest) (*dto.CartelResponse, error) {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := encodeCartelSettings(in.Settings)
	if err != nil {
		return nil, err
	}
	var created *entity.CartelConfiguration
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if in.IsDefault {
			if err := r.Carteles.ClearDefault(ctx, user.AccountID); err != nil {
				return err
			}
		}
		created, err = r.Carteles.Create(ctx, user.AccountID, &entity.CartelConfiguration{
			UserID:    user.ID,
			Name:      in.Name,
			IsDefault: in.IsDefault,
			Settings:  raw,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCartelResponse(created)
}

// Update reemplaza nombre y ajustes.
func (uc *CartelUseCase) Update(ctx context.Context, id int64, in dto.CartelRequest) (*dto.CartelResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("nombre obligatorio: %w", domain.ErrValidation)
	}
	raw, err := encodeCartelSettings(in.Settings)
	if err != nil {
		return nil, err
	}
	updated, err := uc.carteles.Update(ctx, accountID, id, map[string]any{"name": in.Name, "settings": raw})
	if err != nil {
		return nil, err
	}
	return toCartelResponse(updated)
}

// Get configuración por id.
func (uc *CartelUseCase) Get(ctx context.Context, id int64) (*dto.CartelResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	c, err := uc.carteles.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	return toCartelResponse(c)
}

// List todas las configuraciones activas de la cuenta.
func (uc *CartelUseCase) List(ctx context.Context) ([]*dto.CartelResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := uc.carteles.List(ctx, accountID, repository.ListParams{Page: 1, Limit: repository.MaxPageSize})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CartelResponse, 0, len(rows))
	for _, c := range rows {
		resp, err := toCartelResponse(c)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// GetDefault configuración predeterminada; ErrNoDefaultCartel si no hay.
func (uc *CartelUseCase) GetDefault(ctx context.Context) (*dto.CartelResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	c, err := uc.carteles.GetDefault(ctx, accountID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrNoDefaultCartel
	}
	if err != nil {
		return nil, err
	}
	return toCartelResponse(c)
}

// SetDefault marca id como predeterminada: desmarca todas y marca la indicada en una transacción.
func (uc *CartelUseCase) SetDefault(ctx context.Context, id int64) (*dto.CartelResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	var updated *entity.CartelConfiguration
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if _, err := r.Carteles.GetByID(ctx, accountID, id); err != nil {
			return err
		}
		if err := r.Carteles.ClearDefault(ctx, accountID); err != nil {
			return err
		}
		updated, err = r.Carteles.Update(ctx, accountID, id, map[string]any{"is_default": true})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCartelResponse(updated)
}

// Delete baja lógica.
func (uc *CartelUseCase) Delete(ctx context.Context, id int64) error {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return err
	}
	ok, err := uc.carteles.SoftDelete(ctx, accountID, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete cartel %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
