package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
	"github.com/jhoicas/crm-inmobiliario/pkg/jwt"
	"github.com/jhoicas/crm-inmobiliario/pkg/textnorm"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de cuenta, login y sesión actual.
type AuthUseCase struct {
	repos    repository.Repos
	tx       ports.TxRunner
	sessions *Resolver
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repos repository.Repos, tx ports.TxRunner, sessions *Resolver, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{repos: repos, tx: tx, sessions: sessions, jwtCfg: jwtCfg, log: log.With().Str("component", "auth").Logger()}
}

// Signup crea la cuenta, sus roles, el usuario administrador y su asignación de rol en una transacción.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if existing, err := uc.repos.Users.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var (
		account *entity.Account
		admin   *entity.User
	)
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		slug, err := uniqueSlug(ctx, r.Accounts, in.AccountName)
		if err != nil {
			return err
		}
		account, err = r.Accounts.Create(ctx, &entity.Account{
			Name:  strings.TrimSpace(in.AccountName),
			Slug:  slug,
			Email: strings.ToLower(strings.TrimSpace(in.Email)),
			Phone: in.Phone,
		})
		if err != nil {
			return err
		}
		if err := InitAccountRoles(ctx, r, account.ID); err != nil {
			return err
		}
		admin, err = r.Users.Create(ctx, account.ID, &entity.User{
			Email:        in.Email,
			PasswordHash: string(hash),
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			Phone:        in.Phone,
		})
		if err != nil {
			return err
		}
		role, err := r.Roles.GetByCode(ctx, entity.RoleAccountAdmin)
		if err != nil {
			return err
		}
		return r.UserRoles.Assign(ctx, admin.ID, role.ID)
	})
	if err != nil {
		return nil, err
	}

	login, err := uc.issue(admin, entity.RoleAccountAdmin)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("account_id", account.ID).Str("slug", account.Slug).Msg("cuenta creada")
	return &dto.SignupResponse{Account: account, LoginResponse: *login}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.repos.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	account, err := uc.repos.Accounts.GetByID(ctx, user.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, domain.ErrForbidden
	}
	roleCode := entity.RoleAgent
	if role, err := uc.repos.UserRoles.RoleOf(ctx, user.ID); err == nil {
		roleCode = role.Code
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return uc.issue(user, roleCode)
}

// Me usuario de la sesión actual.
func (uc *AuthUseCase) Me(ctx context.Context) (*entity.SessionUser, error) {
	return uc.sessions.CurrentUser(ctx)
}

func (uc *AuthUseCase) issue(u *entity.User, role string) (*dto.LoginResponse, error) {
	sub := jwt.Subject{
		UserID:    u.ID,
		AccountID: u.AccountID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      role,
	}
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, sub, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User: entity.SessionUser{
			ID: u.ID, AccountID: u.AccountID, Email: u.Email,
			FirstName: u.FirstName, LastName: u.LastName, Role: role,
		},
	}, nil
}

// uniqueSlug slug del nombre; si ya existe se añade un sufijo aleatorio.
func uniqueSlug(ctx context.Context, accounts repository.AccountRepository, name string) (string, error) {
	base := textnorm.Slug(name)
	if base == "" {
		base = "agencia"
	}
	_, err := accounts.GetBySlug(ctx, base)
	if errors.Is(err, domain.ErrNotFound) {
		return base, nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:6]), nil
}

// InitAccountRoles crea la configuración de permisos de cada rol del catálogo para la cuenta.
// Los roles ya configurados no se tocan. Debe ejecutarse dentro de una transacción.
func InitAccountRoles(ctx context.Context, r repository.Repos, accountID int64) error {
	roles, err := r.Roles.EnsureCatalog(ctx)
	if err != nil {
		return err
	}
	for _, role := range roles {
		_, err := r.AccountRoles.GetByRole(ctx, accountID, role.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		perms, err := entity.EncodePermissions(entity.DefaultPermissions(role.Code))
		if err != nil {
			return err
		}
		if _, err := r.AccountRoles.Create(ctx, accountID, &entity.AccountRole{RoleID: role.ID, Permissions: perms}); err != nil {
			return err
		}
	}
	return nil
}
