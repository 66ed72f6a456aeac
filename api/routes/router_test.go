package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/divelink/backoffice-backend/api/middleware"
	"github.com/divelink/backoffice-backend/internal/audit"
	"github.com/divelink/backoffice-backend/internal/auth"
	"github.com/divelink/backoffice-backend/internal/notifications"
	"github.com/divelink/backoffice-backend/internal/reports"
	"github.com/divelink/backoffice-backend/internal/shops"
	"github.com/divelink/backoffice-backend/internal/support"
	"github.com/divelink/backoffice-backend/internal/users"
	pkgAuth "github.com/divelink/backoffice-backend/pkg/auth"
	"github.com/divelink/backoffice-backend/pkg/auth/session"
	"github.com/divelink/backoffice-backend/pkg/config"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubDirectory struct {
	roles map[string]enums.AdminRole
}

func (s stubDirectory) Resolve(ctx context.Context, uid string) (*middleware.AdminPrincipal, error) {
	role, ok := s.roles[uid]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
	}
	return &middleware.AdminPrincipal{UID: uid, Email: uid + "@divelink.app", Role: role}, nil
}

func (s stubDirectory) TouchLastLogin(ctx context.Context, uid string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenPair, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
}

func (stubAuthService) Logout(ctx context.Context, accessToken string) error {
	return nil
}

func (stubAuthService) Me(ctx context.Context, uid string) (*auth.AdminProfile, error) {
	return &auth.AdminProfile{UID: uid}, nil
}

type stubShopsService struct{}

func (stubShopsService) List(ctx context.Context, params shops.ListParams) (*shops.ListResult, error) {
	return &shops.ListResult{}, nil
}

func (stubShopsService) Get(ctx context.Context, id uuid.UUID) (*models.ShopApplication, error) {
	return &models.ShopApplication{ID: id}, nil
}

func (stubShopsService) Approve(ctx context.Context, id uuid.UUID, actorUID string) (*models.ShopApplication, error) {
	return &models.ShopApplication{ID: id, Status: enums.ApplicationStatusApproved}, nil
}

func (stubShopsService) Reject(ctx context.Context, id uuid.UUID, reason, actorUID string) (*models.ShopApplication, error) {
	return &models.ShopApplication{ID: id, Status: enums.ApplicationStatusRejected}, nil
}

type stubReportsService struct{}

func (stubReportsService) List(ctx context.Context, params reports.ListParams) (*reports.ListResult, error) {
	return &reports.ListResult{}, nil
}

func (stubReportsService) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return &models.Report{ID: id}, nil
}

func (stubReportsService) ApplyAction(ctx context.Context, id uuid.UUID, input reports.ActionInput) (*models.Report, error) {
	return &models.Report{ID: id}, nil
}

type stubSupportService struct{}

func (stubSupportService) List(ctx context.Context, params support.ListParams) (*support.ListResult, error) {
	return &support.ListResult{}, nil
}

func (stubSupportService) Get(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	return &models.SupportTicket{ID: id}, nil
}

func (stubSupportService) Reply(ctx context.Context, id uuid.UUID, content, actorUID string) (*models.TicketReply, error) {
	return &models.TicketReply{TicketID: id, Content: content}, nil
}

type stubUsersService struct{}

func (stubUsersService) List(ctx context.Context, params users.ListParams) (*users.ListResult, error) {
	return &users.ListResult{}, nil
}

func (stubUsersService) Get(ctx context.Context, uid string) (*models.AppUser, error) {
	return &models.AppUser{UID: uid}, nil
}

func (stubUsersService) ApplyAction(ctx context.Context, uid string, input users.ActionInput) (*models.AppUser, error) {
	return &models.AppUser{UID: uid}, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) Send(ctx context.Context, input notifications.SendInput) (*models.NotificationLog, error) {
	return &models.NotificationLog{Status: enums.NotificationStatusSent}, nil
}

func (stubNotificationsService) Get(ctx context.Context, id uuid.UUID) (*models.NotificationLog, error) {
	return &models.NotificationLog{ID: id}, nil
}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

type stubAuditService struct{}

func (stubAuditService) Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error {
	return nil
}

func (stubAuditService) List(ctx context.Context, params audit.ListParams) (*audit.ListResult, error) {
	return &audit.ListResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "divelink-admin",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Sessions: stubSessionChecker{},
		Directory: stubDirectory{roles: map[string]enums.AdminRole{
			"mod-1":   enums.AdminRoleModerator,
			"admin-1": enums.AdminRoleAdmin,
		}},
		AuthService:          stubAuthService{},
		ShopsService:         stubShopsService{},
		ReportsService:       stubReportsService{},
		SupportService:       stubSupportService{},
		UsersService:         stubUsersService{},
		NotificationsService: stubNotificationsService{},
		AuditService:         stubAuditService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, uid string, role enums.AdminRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		AdminUID: uid,
		Role:     role,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestModeratorCanReadQueues(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	for _, path := range []string{"/api/v1/reports", "/api/v1/applications", "/api/v1/users", "/api/v1/support/tickets", "/api/v1/notifications"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "mod-1", enums.AdminRoleModerator))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 for moderator got %d", path, resp.Code)
		}
	}
}

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	asModerator := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	asModerator.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "mod-1", enums.AdminRoleModerator))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asModerator)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for moderator got %d", resp.Code)
	}

	asAdmin := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	asAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "admin-1", enums.AdminRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asAdmin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestApproveRouteRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	path := "/api/v1/applications/" + uuid.NewString() + "/approve"
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "mod-1", enums.AdminRoleModerator))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for moderator got %d", resp.Code)
	}
}

func TestUnknownAdminIsRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "ghost", enums.AdminRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown admin got %d", resp.Code)
	}
}
