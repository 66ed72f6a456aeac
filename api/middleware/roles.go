package middleware

import (
	"net/http"

	"github.com/divelink/backoffice-backend/api/responses"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/logger"
)

// RequireRole gates a route on a minimum admin role. Roles are ordered, so
// an admin passes every moderator gate.
func RequireRole(min enums.AdminRole, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := AdminRoleFromContext(r.Context())
			if !role.IsValid() || !role.AtLeast(min) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
