package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tiendasport/storefront-api/pkg/enums"
)

func TestRequirePolicy(t *testing.T) {
	cases := []struct {
		name       string
		policy     Policy
		role       string
		wantStatus int
	}{
		{"cliente allowed on authenticated", PolicyAuthenticated, "cliente", http.StatusOK},
		{"admin allowed on authenticated", PolicyAuthenticated, "admin", http.StatusOK},
		{"cliente blocked on admin", PolicyAdmin, "cliente", http.StatusForbidden},
		{"admin allowed on admin", PolicyAdmin, "admin", http.StatusOK},
		{"missing role is unauthorized", PolicyAdmin, "", http.StatusUnauthorized},
		{"unknown role is forbidden", PolicyAuthenticated, "ghost", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequirePolicy(tc.policy, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.role != "" {
				req = req.WithContext(WithRole(req.Context(), tc.role))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestPolicyAllows(t *testing.T) {
	if !PolicyAdmin.Allows(string(enums.RoleAdmin)) {
		t.Fatal("admin policy should allow admin")
	}
	if PolicyAdmin.Allows(string(enums.RoleCliente)) {
		t.Fatal("admin policy should not allow cliente")
	}
}
