package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/api/middleware"
	"github.com/divelink/backoffice-backend/api/responses"
	"github.com/divelink/backoffice-backend/api/validators"
	"github.com/divelink/backoffice-backend/internal/shops"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// RejectApplicationBody carries the mandatory rejection reason.
type RejectApplicationBody struct {
	Reason string `json:"reason" validate:"required,min=1,max=2000"`
}

// ListApplications returns shop applications filtered by status and region.
func ListApplications(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), shops.ListParams{
			Status: r.URL.Query().Get("status"),
			Region: r.URL.Query().Get("region"),
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetApplication(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		id, err := applicationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, app)
	}
}

// ApproveApplication settles a pending application and grants shop-staff
// status to the applicant.
func ApproveApplication(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		id, err := applicationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.Approve(r.Context(), id, middleware.AdminUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, app)
	}
}

func RejectApplication(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		id, err := applicationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body RejectApplicationBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.Reject(r.Context(), id, body.Reason, middleware.AdminUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, app)
	}
}

func applicationID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "applicationId"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid application id")
	}
	return id, nil
}
