package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/internal/support"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
)

type testSupportService struct {
	listFn  func(ctx context.Context, params support.ListParams) (*support.ListResult, error)
	getFn   func(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error)
	replyFn func(ctx context.Context, id uuid.UUID, content, actorUID string) (*models.TicketReply, error)
}

func (s *testSupportService) List(ctx context.Context, params support.ListParams) (*support.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &support.ListResult{}, nil
}

func (s *testSupportService) Get(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
}

func (s *testSupportService) Reply(ctx context.Context, id uuid.UUID, content, actorUID string) (*models.TicketReply, error) {
	if s.replyFn != nil {
		return s.replyFn(ctx, id, content, actorUID)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
}

func TestReplyTicketCreated(t *testing.T) {
	ticketID := uuid.New()
	var gotContent, gotActor string
	svc := &testSupportService{
		replyFn: func(ctx context.Context, id uuid.UUID, content, actorUID string) (*models.TicketReply, error) {
			if id != ticketID {
				t.Fatalf("unexpected ticket %s", id)
			}
			gotContent = content
			gotActor = actorUID
			return &models.TicketReply{ID: uuid.New(), TicketID: id, Content: content, IsAdmin: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/"+ticketID.String()+"/replies", strings.NewReader(`{"content":"Please update the app and retry."}`))
	req.Header.Set("Content-Type", "application/json")
	req = asAdmin(req, "admin-5")
	req = addRouteParam(req, "ticketId", ticketID.String())

	resp := httptest.NewRecorder()
	ReplyTicket(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotContent != "Please update the app and retry." {
		t.Fatalf("unexpected content %q", gotContent)
	}
	if gotActor != "admin-5" {
		t.Fatalf("unexpected actor %q", gotActor)
	}
}

func TestReplyTicketRejectsEmptyBody(t *testing.T) {
	ticketID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/"+ticketID.String()+"/replies", strings.NewReader(`{"content":""}`))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "ticketId", ticketID.String())
	resp := httptest.NewRecorder()
	ReplyTicket(&testSupportService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
