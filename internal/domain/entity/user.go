package entity

// Roles del catálogo global. El código viaja en el JWT para el middleware RBAC.
const (
	RoleAgent        = "agent"
	RoleAccountAdmin = "account_admin"
	RoleSuperAdmin   = "super_admin"
)

// User representa un usuario del sistema (pertenece a una Account).
type User struct {
	Owned
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // bcrypt hash, nunca plano después de persistir
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
}

// FullName nombre para mostrar.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Role rol del catálogo global.
type Role struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"uniqueIndex;not null" json:"code"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}

// UserRole asignación de rol a un usuario (uno por usuario).
type UserRole struct {
	Record
	UserID int64 `gorm:"uniqueIndex;not null" json:"user_id"`
	RoleID int64 `gorm:"not null;index" json:"role_id"`
}

// DefaultRoles catálogo inicial de roles.
func DefaultRoles() []Role {
	return []Role{
		{Code: RoleAgent, Name: "Agente", Description: "Gestiona contactos, inmuebles y citas"},
		{Code: RoleAccountAdmin, Name: "Administrador de cuenta", Description: "Configura la cuenta, usuarios y web"},
		{Code: RoleSuperAdmin, Name: "Superadministrador", Description: "Soporte de la plataforma"},
	}
}
