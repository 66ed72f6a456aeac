package auth

import (
	"context"
	"testing"
	"time"

	"github.com/divelink/backoffice-backend/internal/admins"
	pkgAuth "github.com/divelink/backoffice-backend/pkg/auth"
	"github.com/divelink/backoffice-backend/pkg/auth/session"
	"github.com/divelink/backoffice-backend/pkg/config"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	"github.com/divelink/backoffice-backend/pkg/security"
)

func TestServiceLoginIssuesTokenPair(t *testing.T) {
	password := "correct horse"
	admin := testAdmin(t, password, enums.AdminRoleAdmin)
	cfg := testJWTConfig()
	svc := buildTestService(t, admin, cfg)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    admin.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected refresh token")
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.AdminUID != admin.UID {
		t.Fatalf("expected uid %s got %s", admin.UID, claims.AdminUID)
	}
	if claims.Role != enums.AdminRoleAdmin {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
	if resp.Admin.Email != admin.Email {
		t.Fatalf("expected profile email %s got %s", admin.Email, resp.Admin.Email)
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	admin := testAdmin(t, "right password", enums.AdminRoleModerator)
	svc := buildTestService(t, admin, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    admin.Email,
		Password: "wrong password",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	svc := buildTestService(t, nil, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceRefreshPicksUpRoleChange(t *testing.T) {
	password := "correct horse"
	admin := testAdmin(t, password, enums.AdminRoleModerator)
	cfg := testJWTConfig()
	repo := &stubAdminRepo{admin: admin}
	sessions := &stubSessionManager{refreshToken: "refresh-1", rotatedToken: "refresh-2"}
	svc := newService(t, repo, sessions, cfg)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: admin.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	admin.Role = enums.AdminRoleSuperAdmin

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.Role != enums.AdminRoleSuperAdmin {
		t.Fatalf("expected refreshed role claim, got %s", claims.Role)
	}
	if pair.RefreshToken != "refresh-2" {
		t.Fatalf("expected rotated refresh token, got %s", pair.RefreshToken)
	}
}

func TestServiceRefreshInvalidToken(t *testing.T) {
	admin := testAdmin(t, "pw", enums.AdminRoleAdmin)
	sessions := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc := newService(t, &stubAdminRepo{admin: admin}, sessions, testJWTConfig())

	token := mustMintToken(t, testJWTConfig(), admin)
	_, err := svc.Refresh(context.Background(), RefreshRequest{AccessToken: token, RefreshToken: "stolen"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	admin := testAdmin(t, "pw", enums.AdminRoleAdmin)
	sessions := &stubSessionManager{}
	svc := newService(t, &stubAdminRepo{admin: admin}, sessions, testJWTConfig())

	token := mustMintToken(t, testJWTConfig(), admin)
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revokedID == "" {
		t.Fatal("expected session revoked")
	}
}

func TestServiceMeUnknownAdmin(t *testing.T) {
	svc := buildTestService(t, nil, testJWTConfig())

	_, err := svc.Me(context.Background(), "ghost")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func buildTestService(t *testing.T, admin *models.Admin, cfg config.JWTConfig) Service {
	t.Helper()
	sessions := &stubSessionManager{refreshToken: "refresh-1", rotatedToken: "refresh-2"}
	return newService(t, &stubAdminRepo{admin: admin}, sessions, cfg)
}

func newService(t *testing.T, repo adminRepository, sessions sessionManager, cfg config.JWTConfig) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		AdminRepo:      repo,
		SessionManager: sessions,
		JWTConfig:      cfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "divelink",
		ExpirationMinutes: 30,
	}
}

func testAdmin(t *testing.T, password string, role enums.AdminRole) *models.Admin {
	t.Helper()
	hashed, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.Admin{
		UID:          "admin-uid-1",
		Email:        "luffy@example.com",
		Name:         "Luffy",
		PasswordHash: hashed,
		Role:         role,
	}
}

func mustMintToken(t *testing.T, cfg config.JWTConfig, admin *models.Admin) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		AdminUID: admin.UID,
		Email:    admin.Email,
		Role:     admin.Role,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

type stubAdminRepo struct {
	admin    *models.Admin
	getErr   error
	touched  bool
	touchErr error
}

func (s *stubAdminRepo) GetByUID(ctx context.Context, uid string) (*models.Admin, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.admin == nil || s.admin.UID != uid {
		return nil, admins.ErrNotFound
	}
	return s.admin, nil
}

func (s *stubAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.admin == nil || s.admin.Email != email {
		return nil, admins.ErrNotFound
	}
	return s.admin, nil
}

func (s *stubAdminRepo) TouchLastLogin(ctx context.Context, uid string, now time.Time) error {
	if s.touchErr != nil {
		return s.touchErr
	}
	s.touched = true
	return nil
}

type stubSessionManager struct {
	refreshToken string
	rotatedToken string
	generateErr  error
	rotateErr    error
	revokeErr    error
	revokedID    string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return session.NewAccessID(), s.rotatedToken, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revokedID = accessID
	return nil
}
