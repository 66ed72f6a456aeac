package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/api/middleware"
	"github.com/divelink/backoffice-backend/api/responses"
	"github.com/divelink/backoffice-backend/api/validators"
	"github.com/divelink/backoffice-backend/internal/reports"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// ReportActionBody carries one moderation decision.
type ReportActionBody struct {
	Action string `json:"action" validate:"required"`
	Note   string `json:"note" validate:"max=2000"`
}

func ListReports(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), reports.ListParams{
			Status:         r.URL.Query().Get("status"),
			Reason:         r.URL.Query().Get("reason"),
			ReportedUserID: r.URL.Query().Get("reportedUserId"),
			Limit:          limit,
			Cursor:         strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		id, err := reportID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ActionReport records the moderation decision on a report.
func ActionReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		id, err := reportID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ReportActionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := enums.ParseReportAction(body.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid report action"))
			return
		}

		report, err := svc.ApplyAction(r.Context(), id, reports.ActionInput{
			Action:   action,
			Note:     body.Note,
			ActorUID: middleware.AdminUIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func reportID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "reportId"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid report id")
	}
	return id, nil
}
