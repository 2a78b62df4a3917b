package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

const minPasswordLen = 8

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil && !strings.ContainsAny(s, " <>")
}

// SignupRequest alta de una agencia con su usuario administrador.
type SignupRequest struct {
	AccountName string `json:"account_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
}

func (r SignupRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.AccountName) == "":
		return fmt.Errorf("account_name obligatorio: %w", domain.ErrValidation)
	case !validEmail(r.Email):
		return fmt.Errorf("email inválido: %w", domain.ErrValidation)
	case len(r.Password) < minPasswordLen:
		return fmt.Errorf("la contraseña debe tener al menos %d caracteres: %w", minPasswordLen, domain.ErrValidation)
	case strings.TrimSpace(r.FirstName) == "":
		return fmt.Errorf("first_name obligatorio: %w", domain.ErrValidation)
	}
	return nil
}

// CreateUserRequest alta de un usuario en la cuenta actual (password en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

func (r CreateUserRequest) Validate() error {
	switch {
	case !validEmail(r.Email):
		return fmt.Errorf("email inválido: %w", domain.ErrValidation)
	case len(r.Password) < minPasswordLen:
		return fmt.Errorf("la contraseña debe tener al menos %d caracteres: %w", minPasswordLen, domain.ErrValidation)
	case strings.TrimSpace(r.FirstName) == "":
		return fmt.Errorf("first_name obligatorio: %w", domain.ErrValidation)
	case r.Role != entity.RoleAgent && r.Role != entity.RoleAccountAdmin:
		return fmt.Errorf("rol %q no asignable: %w", r.Role, domain.ErrValidation)
	}
	return nil
}

// UpdateUserRequest actualización parcial de un usuario.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// UpdateRoleRequest cambio de rol.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse convierte la entidad; role puede venir vacío.
func ToUserResponse(u *entity.User, role string) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		AccountID: u.AccountID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fmt.Errorf("email y contraseña obligatorios: %w", domain.ErrValidation)
	}
	return nil
}

// LoginResponse token JWT y sesión resultante.
type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      entity.SessionUser `json:"user"`
}

// SignupResponse cuenta creada y sesión del administrador.
type SignupResponse struct {
	Account *entity.Account `json:"account"`
	LoginResponse
}
