package entity

// Role es el conjunto cerrado de roles del sistema. Toda decisión de
// autorización hace match exhaustivo sobre estas constantes; nunca se
// comparan strings libres.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleRider    Role = "rider"
)

// ParseRole valida un rol recibido por la API. Devuelve false si no es
// uno de los tres roles conocidos.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin, RoleRider:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }
