package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/divelink/backoffice-backend/pkg/enums"
)

func roleRequest(role enums.AdminRole) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(WithAdmin(req.Context(), "admin-1", "admin@divelink.app", role))
}

func TestRequireRoleBlocksLowerRole(t *testing.T) {
	handler := RequireRole(enums.AdminRoleAdmin, testAuthLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, roleRequest(enums.AdminRoleModerator))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequireRoleAllowsHigherRole(t *testing.T) {
	handler := RequireRole(enums.AdminRoleModerator, testAuthLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, roleRequest(enums.AdminRoleSuperAdmin))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireRoleBlocksMissingRole(t *testing.T) {
	handler := RequireRole(enums.AdminRoleModerator, testAuthLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}
