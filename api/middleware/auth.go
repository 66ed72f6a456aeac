package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/divelink/backoffice-backend/api/responses"
	pkgAuth "github.com/divelink/backoffice-backend/pkg/auth"
	"github.com/divelink/backoffice-backend/pkg/auth/session"
	"github.com/divelink/backoffice-backend/pkg/config"
	"github.com/divelink/backoffice-backend/pkg/enums"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
	fb "github.com/divelink/backoffice-backend/pkg/firebase"
	"github.com/divelink/backoffice-backend/pkg/logger"
)

// SessionCookieName is the cookie carrying the provider session for
// dashboard clients that do not attach an Authorization header.
const SessionCookieName = "admin_session"

// IdentityVerifier is the provider-side credential check surface.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (*fb.Identity, error)
	VerifySessionCookie(ctx context.Context, cookie string) (*fb.Identity, error)
}

// AdminPrincipal is the resolved back-office operator for a request.
type AdminPrincipal struct {
	UID   string
	Email string
	Role  enums.AdminRole
}

// AdminDirectory maps a provider identity onto a registered admin account.
type AdminDirectory interface {
	Resolve(ctx context.Context, uid string) (*AdminPrincipal, error)
	TouchLastLogin(ctx context.Context, uid string) error
}

// Auth resolves the request credential into an admin principal and seeds
// the context. Bearer tokens are tried against the identity provider
// first, then against locally minted JWTs; the session cookie only ever
// carries a provider session.
func Auth(cfg config.JWTConfig, verifier IdentityVerifier, sessions session.AccessSessionChecker, directory AdminDirectory, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := resolveUID(r, cfg, verifier, sessions)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			principal, err := resolvePrincipal(r.Context(), directory, uid)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			// Last-login tracking is best effort; a write failure must not
			// block the request.
			if touchErr := directory.TouchLastLogin(r.Context(), principal.UID); touchErr != nil && logg != nil {
				logg.Warn(logg.WithAdminUID(r.Context(), principal.UID), "auth.last_login.update_failed")
			}

			ctx := WithAdmin(r.Context(), principal.UID, principal.Email, principal.Role)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"admin_uid":  principal.UID,
					"admin_role": string(principal.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveUID(r *http.Request, cfg config.JWTConfig, verifier IdentityVerifier, sessions session.AccessSessionChecker) (string, error) {
	if token := bearerToken(r); token != "" {
		if verifier != nil {
			if identity, err := verifier.VerifyIDToken(r.Context(), token); err == nil {
				return identity.UID, nil
			}
		}
		return uidFromLocalToken(r.Context(), cfg, sessions, token)
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && strings.TrimSpace(cookie.Value) != "" {
		if verifier == nil {
			return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session cookie not supported")
		}
		identity, verifyErr := verifier.VerifySessionCookie(r.Context(), cookie.Value)
		if verifyErr != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, verifyErr, "invalid session cookie")
		}
		return identity.UID, nil
	}

	return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
}

func uidFromLocalToken(ctx context.Context, cfg config.JWTConfig, sessions session.AccessSessionChecker, token string) (string, error) {
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if sessions != nil {
		ok, err := sessions.HasSession(ctx, claims.ID)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if !ok {
			return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
		}
	}
	return claims.AdminUID, nil
}

func resolvePrincipal(ctx context.Context, directory AdminDirectory, uid string) (*AdminPrincipal, error) {
	if directory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "admin directory unavailable")
	}
	principal, err := directory.Resolve(ctx, uid)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not a registered admin")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve admin")
	}
	return principal, nil
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
