package middleware

import (
	"context"

	"github.com/divelink/backoffice-backend/pkg/enums"
)

type contextKey string

const (
	ctxAdminUID   contextKey = "admin_uid"
	ctxAdminEmail contextKey = "admin_email"
	ctxAdminRole  contextKey = "admin_role"
)

func AdminUIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminUID).(string); ok {
		return v
	}
	return ""
}

func AdminEmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminEmail).(string); ok {
		return v
	}
	return ""
}

func AdminRoleFromContext(ctx context.Context) enums.AdminRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminRole).(enums.AdminRole); ok {
		return v
	}
	return ""
}

// WithAdmin injects the authenticated admin identity into the context.
func WithAdmin(ctx context.Context, uid, email string, role enums.AdminRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxAdminUID, uid)
	ctx = context.WithValue(ctx, ctxAdminEmail, email)
	return context.WithValue(ctx, ctxAdminRole, role)
}
