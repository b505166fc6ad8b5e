package middleware

import (
	"net/http"

	"github.com/tiendasport/storefront-api/api/responses"
	"github.com/tiendasport/storefront-api/pkg/enums"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/logger"
)

// Policy declares which roles may reach a route group. Routes mount exactly
// one policy instead of scattering per-handler role checks.
type Policy struct {
	Name  string
	Roles []enums.Role
}

var (
	// PolicyAuthenticated admits any logged-in user.
	PolicyAuthenticated = Policy{Name: "authenticated", Roles: []enums.Role{enums.RoleCliente, enums.RoleAdmin}}
	// PolicyAdmin admits back-office users only.
	PolicyAdmin = Policy{Name: "admin", Roles: []enums.Role{enums.RoleAdmin}}
)

// Allows reports whether the role satisfies the policy.
func (p Policy) Allows(role string) bool {
	for _, allowed := range p.Roles {
		if string(allowed) == role {
			return true
		}
	}
	return false
}

// RequirePolicy enforces a declared policy against the context role seeded by Auth.
func RequirePolicy(policy Policy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if !policy.Allows(role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
