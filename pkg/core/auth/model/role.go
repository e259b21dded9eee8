package model

import (
	"regexp"
	"strings"

	errs "book-catalog/pkg/common/errors"
)

// Role selects the password-format rule applied at login.
type Role int

const (
	RoleUsuario Role = iota
	RoleModerador
	RoleAdmin
)

const (
	ModeratorPrefix = "mod_"

	MsgModeratorPrefix = "Las contraseñas de moderador deben comenzar con 'mod_'"
	MsgAdminSpecial    = "Las contraseñas de admin deben contener al menos un carácter especial (@#$%^&+=)"
)

var (
	roleNames = [...]string{"usuario", "moderador", "admin"}

	specialChars = regexp.MustCompile(`[@#$%^&+=]`)
)

func (r Role) String() string {
	if r < RoleUsuario || r > RoleAdmin {
		return roleNames[RoleUsuario]
	}
	return roleNames[r]
}

// ParseRole reads the rol field of a login request. Missing, non-string and
// unknown values all mean RoleUsuario.
func ParseRole(v interface{}) Role {
	s, ok := v.(string)
	if !ok {
		return RoleUsuario
	}
	switch s {
	case "moderador":
		return RoleModerador
	case "admin":
		return RoleAdmin
	default:
		return RoleUsuario
	}
}

// CheckPassword applies the role's password-shape rule.
func (r Role) CheckPassword(pwd string) error {
	switch r {
	case RoleModerador:
		if !strings.HasPrefix(pwd, ModeratorPrefix) {
			return errs.NewValidation("password", MsgModeratorPrefix)
		}
	case RoleAdmin:
		if !specialChars.MatchString(pwd) {
			return errs.NewValidation("password", MsgAdminSpecial)
		}
	}
	return nil
}

// Permissions lists what a role may do with the catalog.
type Permissions struct {
	Crear    bool `json:"crear"`
	Editar   bool `json:"editar"`
	Eliminar bool `json:"eliminar"`
}

func (r Role) Permissions() Permissions {
	switch r {
	case RoleAdmin:
		return Permissions{Crear: true, Editar: true, Eliminar: true}
	case RoleModerador:
		return Permissions{Crear: true, Editar: true}
	default:
		return Permissions{}
	}
}
