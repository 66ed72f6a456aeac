package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/internal/notifications"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
)

type testNotificationsService struct {
	sendFn func(ctx context.Context, input notifications.SendInput) (*models.NotificationLog, error)
	getFn  func(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error)
	listFn func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error)
}

func (s *testNotificationsService) Send(ctx context.Context, input notifications.SendInput) (*models.NotificationLog, error) {
	if s.sendFn != nil {
		return s.sendFn(ctx, input)
	}
	return &models.NotificationLog{}, nil
}

func (s *testNotificationsService) Get(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
}

func (s *testNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &notifications.ListResult{}, nil
}

func TestSendNotificationForwardsSegment(t *testing.T) {
	var gotInput notifications.SendInput
	svc := &testNotificationsService{
		sendFn: func(ctx context.Context, input notifications.SendInput) (*models.NotificationLog, error) {
			gotInput = input
			return &models.NotificationLog{ID: uuid.New(), Status: enums.NotificationStatusSent}, nil
		},
	}

	body := `{"title":"Typhoon advisory","body":"Shore entries closed this weekend.","target":"segment","segment_rank":"instructor","segment_region":"okinawa","schedule_type":"now"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = asAdmin(req, "admin-3")

	resp := httptest.NewRecorder()
	SendNotification(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotInput.Target != enums.NotificationTargetSegment {
		t.Fatalf("unexpected target %q", gotInput.Target)
	}
	if gotInput.SegmentRank != "instructor" || gotInput.SegmentRegion != "okinawa" {
		t.Fatalf("unexpected segment %q/%q", gotInput.SegmentRank, gotInput.SegmentRegion)
	}
	if gotInput.ActorUID != "admin-3" {
		t.Fatalf("unexpected actor %q", gotInput.ActorUID)
	}
}

func TestSendNotificationRejectsUnknownTarget(t *testing.T) {
	body := `{"title":"t","body":"b","target":"everyone","schedule_type":"now"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	SendNotification(&testNotificationsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSendNotificationScheduledNeedsTimestamp(t *testing.T) {
	body := `{"title":"t","body":"b","target":"all","schedule_type":"scheduled"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	SendNotification(&testNotificationsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSendNotificationSurfacesDeliveryFailure(t *testing.T) {
	svc := &testNotificationsService{
		sendFn: func(ctx context.Context, input notifications.SendInput) (*models.NotificationLog, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "push delivery failed")
		},
	}

	body := `{"title":"t","body":"b","target":"all","schedule_type":"now"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	SendNotification(svc, testLogger())(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestGetNotificationInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/abc", nil)
	req = addRouteParam(req, "notificationId", "abc")
	resp := httptest.NewRecorder()
	GetNotification(&testNotificationsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListNotificationsForwardsFilters(t *testing.T) {
	var gotParams notifications.ListParams
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
			gotParams = params
			return &notifications.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?status=failed&target=segment", nil)
	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if gotParams.Status != "failed" || gotParams.Target != "segment" {
		t.Fatalf("unexpected params %+v", gotParams)
	}
}
