package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/api/handler"
	"github.com/bookbuddy/library-api/internal/core/domain"
)

func invokeRole(t *testing.T, required domain.Role, user *domain.User) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/users/user-2", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if user != nil {
		handler.SetCurrentUser(c, user)
	}

	return RequireRole(required)(func(c echo.Context) error {
		return nil
	})(c)
}

func TestRequireRole_ExactMatchPasses(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleSuperAdmin}
	if err := invokeRole(t, domain.RoleSuperAdmin, user); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestRequireRole_AdminCannotReachSuperAdminRoutes(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleAdmin}
	if err := invokeRole(t, domain.RoleSuperAdmin, user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_SuperAdminIsNotAdmin(t *testing.T) {
	// Gating is by exact role, not by privilege ordering.
	user := &domain.User{ID: "user-1", Role: domain.RoleSuperAdmin}
	if err := invokeRole(t, domain.RoleAdmin, user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_MissingIdentityFailsClosed(t *testing.T) {
	if err := invokeRole(t, domain.RoleSuperAdmin, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
