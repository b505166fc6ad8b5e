// Package enums holds the small closed vocabularies shared across layers.
package enums

// Role classifies an authenticated storefront user.
type Role string

const (
	RoleCliente Role = "cliente"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleCliente, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
