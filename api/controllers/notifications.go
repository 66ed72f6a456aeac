package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/api/middleware"
	"github.com/divelink/backoffice-backend/api/responses"
	"github.com/divelink/backoffice-backend/api/validators"
	"github.com/divelink/backoffice-backend/internal/notifications"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

// SendNotificationBody carries one push notification request.
type SendNotificationBody struct {
	Title         string     `json:"title" validate:"required,min=1,max=200"`
	Body          string     `json:"body" validate:"required,min=1,max=2000"`
	Target        string     `json:"target" validate:"required"`
	SegmentRank   string     `json:"segment_rank" validate:"max=100"`
	SegmentRegion string     `json:"segment_region" validate:"max=100"`
	ScheduleType  string     `json:"schedule_type" validate:"required"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
}

// SendNotification persists and dispatches a push notification.
func SendNotification(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		var body SendNotificationBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, err := enums.ParseNotificationTarget(body.Target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target"))
			return
		}
		scheduleType, err := enums.ParseScheduleType(body.ScheduleType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid schedule type"))
			return
		}
		if scheduleType == enums.ScheduleTypeScheduled && body.ScheduledAt == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "scheduled_at required for scheduled sends"))
			return
		}

		record, err := svc.Send(r.Context(), notifications.SendInput{
			Title:         body.Title,
			Body:          body.Body,
			Target:        target,
			SegmentRank:   body.SegmentRank,
			SegmentRegion: body.SegmentRegion,
			ScheduleType:  scheduleType,
			ScheduledAt:   body.ScheduledAt,
			ActorUID:      middleware.AdminUIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ListNotifications returns the delivery history.
func ListNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), notifications.ListParams{
			Status: r.URL.Query().Get("status"),
			Target: r.URL.Query().Get("target"),
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

func GetNotification(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "notificationId"))
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid notification id"))
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
