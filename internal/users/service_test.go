package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/divelink/backoffice-backend/internal/audit"
	"github.com/divelink/backoffice-backend/internal/events"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/pagination"
)

func TestServiceBanDisablesProviderAccount(t *testing.T) {
	user := activeUser()
	repo := &stubUserRepo{user: user, banOK: true}
	auditSvc := &stubAudit{}
	publisher := &stubPublisher{}
	disabler := &stubDisabler{}
	svc := newTestService(t, repo, auditSvc, publisher, disabler)

	banned, err := svc.ApplyAction(context.Background(), user.UID, ActionInput{
		Action:   enums.UserActionBan,
		Reason:   "harassment",
		ActorUID: "admin-1",
	})
	if err != nil {
		t.Fatalf("ban: %v", err)
	}
	if !banned.IsBanned {
		t.Fatal("expected user banned")
	}
	if disabler.uid != user.UID || !disabler.disabled {
		t.Fatalf("expected provider account disabled for %s", user.UID)
	}
	if len(auditSvc.entries) != 1 || auditSvc.entries[0].Action != "user.banned" {
		t.Fatalf("unexpected audit entries %+v", auditSvc.entries)
	}
	if auditSvc.entries[0].Details["reason"] != "harassment" {
		t.Fatalf("expected audited reason, got %+v", auditSvc.entries[0].Details)
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != events.TypeUserBanned {
		t.Fatalf("expected ban event, got %+v", publisher.events)
	}
}

func TestServiceBanSurvivesProviderFailure(t *testing.T) {
	user := activeUser()
	repo := &stubUserRepo{user: user, banOK: true}
	disabler := &stubDisabler{err: errors.New("provider down")}
	svc := newTestService(t, repo, &stubAudit{}, nil, disabler)

	banned, err := svc.ApplyAction(context.Background(), user.UID, ActionInput{
		Action:   enums.UserActionBan,
		ActorUID: "admin-1",
	})
	if err != nil {
		t.Fatalf("ban must stand when provider fails: %v", err)
	}
	if !banned.IsBanned {
		t.Fatal("expected user banned despite provider failure")
	}
}

func TestServiceUnbanReenablesAccount(t *testing.T) {
	user := activeUser()
	user.IsBanned = true
	repo := &stubUserRepo{user: user, banOK: true}
	publisher := &stubPublisher{}
	disabler := &stubDisabler{}
	svc := newTestService(t, repo, &stubAudit{}, publisher, disabler)

	unbanned, err := svc.ApplyAction(context.Background(), user.UID, ActionInput{
		Action:   enums.UserActionUnban,
		ActorUID: "admin-1",
	})
	if err != nil {
		t.Fatalf("unban: %v", err)
	}
	if unbanned.IsBanned {
		t.Fatal("expected user unbanned")
	}
	if disabler.disabled {
		t.Fatal("expected provider account re-enabled")
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != events.TypeUserUnbanned {
		t.Fatalf("expected unban event, got %+v", publisher.events)
	}
}

func TestServiceWarnOnlyAudits(t *testing.T) {
	user := activeUser()
	repo := &stubUserRepo{user: user}
	auditSvc := &stubAudit{}
	publisher := &stubPublisher{}
	disabler := &stubDisabler{}
	svc := newTestService(t, repo, auditSvc, publisher, disabler)

	warned, err := svc.ApplyAction(context.Background(), user.UID, ActionInput{
		Action:   enums.UserActionWarn,
		Reason:   "tone it down",
		ActorUID: "admin-1",
	})
	if err != nil {
		t.Fatalf("warn: %v", err)
	}
	if warned.IsBanned {
		t.Fatal("warning must not ban")
	}
	if repo.banCalled {
		t.Fatal("warning must not touch the ban flag")
	}
	if disabler.called {
		t.Fatal("warning must not reach the provider")
	}
	if len(auditSvc.entries) != 1 || auditSvc.entries[0].Action != "user.warned" {
		t.Fatalf("unexpected audit entries %+v", auditSvc.entries)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("warning must not emit events, got %+v", publisher.events)
	}
}

func TestServiceApplyActionUnknownUser(t *testing.T) {
	repo := &stubUserRepo{banOK: false}
	svc := newTestService(t, repo, &stubAudit{}, nil, nil)

	_, err := svc.ApplyAction(context.Background(), "ghost", ActionInput{
		Action:   enums.UserActionBan,
		ActorUID: "admin-1",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceApplyActionRejectsUnknownAction(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubAudit{}, nil, nil)

	_, err := svc.ApplyAction(context.Background(), "user-1", ActionInput{
		Action:   enums.UserAction("suspend"),
		ActorUID: "admin-1",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func newTestService(t *testing.T, repo Repository, auditSvc audit.Service, publisher events.Publisher, disabler accountDisabler) Service {
	t.Helper()
	svc, err := NewService(stubTx{}, repo, auditSvc, publisher, disabler, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func activeUser() *models.AppUser {
	return &models.AppUser{
		UID:       "user-7",
		Email:     "zoro@example.com",
		Name:      "Zoro",
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
}

type stubTx struct {
	err error
}

func (s stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(nil)
}

type stubUserRepo struct {
	user       *models.AppUser
	getErr     error
	banOK      bool
	banErr     error
	banCalled  bool
	listRows   []models.AppUser
	listCursor *pagination.Cursor
	listErr    error
}

func (s *stubUserRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubUserRepo) Get(ctx context.Context, uid string) (*models.AppUser, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.user == nil {
		return nil, ErrNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) List(ctx context.Context, params listUsersParams) ([]models.AppUser, *pagination.Cursor, error) {
	if s.listErr != nil {
		return nil, nil, s.listErr
	}
	return s.listRows, s.listCursor, nil
}

func (s *stubUserRepo) SetBanned(ctx context.Context, uid string, banned bool) (bool, error) {
	s.banCalled = true
	if s.banErr != nil {
		return false, s.banErr
	}
	if !s.banOK {
		return false, nil
	}
	if s.user != nil {
		s.user.IsBanned = banned
	}
	return true, nil
}

type stubDisabler struct {
	called   bool
	uid      string
	disabled bool
	err      error
}

func (s *stubDisabler) SetUserDisabled(ctx context.Context, uid string, disabled bool) error {
	s.called = true
	s.uid = uid
	s.disabled = disabled
	return s.err
}

type stubAudit struct {
	entries []audit.Entry
	err     error
}

func (s *stubAudit) Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubAudit) List(ctx context.Context, params audit.ListParams) (*audit.ListResult, error) {
	return &audit.ListResult{}, nil
}

type stubPublisher struct {
	events []events.Event
}

func (s *stubPublisher) Emit(ctx context.Context, event events.Event) {
	s.events = append(s.events, event)
}
