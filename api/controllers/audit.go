package controllers

import (
	"net/http"
	"strings"

	"github.com/divelink/backoffice-backend/api/responses"
	"github.com/divelink/backoffice-backend/api/validators"
	"github.com/divelink/backoffice-backend/internal/audit"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// ListAuditLog returns the admin action trail, newest first.
func ListAuditLog(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), audit.ListParams{
			Action:     strings.TrimSpace(r.URL.Query().Get("action")),
			ActorUID:   strings.TrimSpace(r.URL.Query().Get("actorUid")),
			TargetKind: strings.TrimSpace(r.URL.Query().Get("targetKind")),
			TargetID:   strings.TrimSpace(r.URL.Query().Get("targetId")),
			Limit:      limit,
			Cursor:     strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
