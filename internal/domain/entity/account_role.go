package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// PermissionsVersion versión vigente del esquema de permisos.
const PermissionsVersion = 1

// Acciones y recursos conocidos por el esquema de permisos.
var (
	permissionActions   = map[string]bool{"read": true, "write": true, "delete": true}
	permissionResources = map[string]bool{
		"contacts": true, "properties": true, "listings": true, "appointments": true,
		"tasks": true, "documents": true, "deals": true, "website": true, "users": true, "portals": true,
	}
)

// Permissions esquema versionado de permisos de un rol dentro de una cuenta.
type Permissions struct {
	Version int                 `json:"version"`
	Grants  map[string][]string `json:"grants"` // recurso -> acciones
}

// Allows indica si el rol puede ejecutar action sobre resource.
func (p Permissions) Allows(resource, action string) bool {
	for _, a := range p.Grants[resource] {
		if a == action {
			return true
		}
	}
	return false
}

// Validate comprueba versión, recursos y acciones.
func (p Permissions) Validate() error {
	if p.Version != PermissionsVersion {
		return fmt.Errorf("permisos: versión %d no soportada", p.Version)
	}
	for res, actions := range p.Grants {
		if !permissionResources[res] {
			return fmt.Errorf("permisos: recurso desconocido %q", res)
		}
		for _, a := range actions {
			if !permissionActions[a] {
				return fmt.Errorf("permisos: acción desconocida %q en %q", a, res)
			}
		}
	}
	return nil
}

// DecodePermissions decodifica de forma estricta y valida el JSON almacenado.
func DecodePermissions(raw datatypes.JSON) (Permissions, error) {
	var p Permissions
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Permissions{}, fmt.Errorf("permisos: %w", err)
	}
	return p, p.Validate()
}

// DefaultPermissions permisos iniciales por código de rol.
func DefaultPermissions(roleCode string) Permissions {
	all := []string{"read", "write", "delete"}
	p := Permissions{Version: PermissionsVersion, Grants: map[string][]string{}}
	switch roleCode {
	case RoleAccountAdmin, RoleSuperAdmin:
		for res := range permissionResources {
			p.Grants[res] = all
		}
	default:
		for _, res := range []string{"contacts", "properties", "listings", "appointments", "tasks", "documents", "deals"} {
			p.Grants[res] = []string{"read", "write"}
		}
		p.Grants["website"] = []string{"read"}
	}
	return p
}

// AccountRole configuración de un rol dentro de una cuenta.
type AccountRole struct {
	Owned
	RoleID      int64          `gorm:"not null;index" json:"role_id"`
	Permissions datatypes.JSON `json:"permissions"`
}

// TypedPermissions decodifica los permisos almacenados.
func (r *AccountRole) TypedPermissions() (Permissions, error) {
	return DecodePermissions(r.Permissions)
}

// EncodePermissions serializa permisos validados.
func EncodePermissions(p Permissions) (datatypes.JSON, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
