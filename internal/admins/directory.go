package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/divelink/backoffice-backend/api/middleware"
	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
)

// Directory resolves provider identities onto registered admin accounts.
// It satisfies the auth middleware's AdminDirectory surface.
type Directory struct {
	repo Repository
}

// NewDirectory wires the admin directory.
func NewDirectory(repo Repository) (*Directory, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "admins repository required")
	}
	return &Directory{repo: repo}, nil
}

// Resolve looks up the admin account for the provider uid.
func (d *Directory) Resolve(ctx context.Context, uid string) (*middleware.AdminPrincipal, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "uid required")
	}
	admin, err := d.repo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin")
	}
	return &middleware.AdminPrincipal{
		UID:   admin.UID,
		Email: admin.Email,
		Role:  admin.Role,
	}, nil
}

// TouchLastLogin stamps the admin's last login time.
func (d *Directory) TouchLastLogin(ctx context.Context, uid string) error {
	return d.repo.TouchLastLogin(ctx, uid, time.Now().UTC())
}
