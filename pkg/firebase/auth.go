package firebase

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	pkgerrors "github.com/divelink/backoffice-backend/pkg/errors"
)

// Identity is the resolved provider identity for a credential.
type Identity struct {
	UID   string
	Email string
}

// VerifyIDToken validates a Firebase ID token and returns the identity.
func (c *Client) VerifyIDToken(ctx context.Context, token string) (*Identity, error) {
	if c == nil || c.auth == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "auth client not initialized")
	}
	decoded, err := c.auth.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "verifying id token")
	}
	return identityFromToken(decoded), nil
}

// VerifySessionCookie validates a Firebase session cookie and returns the identity.
func (c *Client) VerifySessionCookie(ctx context.Context, cookie string) (*Identity, error) {
	if c == nil || c.auth == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "auth client not initialized")
	}
	decoded, err := c.auth.VerifySessionCookie(ctx, cookie)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "verifying session cookie")
	}
	return identityFromToken(decoded), nil
}

// SetUserDisabled toggles the provider-side disabled flag for an app user.
func (c *Client) SetUserDisabled(ctx context.Context, uid string, disabled bool) error {
	if c == nil || c.auth == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "auth client not initialized")
	}
	update := (&fbauth.UserToUpdate{}).Disabled(disabled)
	if _, err := c.auth.UpdateUser(ctx, uid, update); err != nil {
		if fbauth.IsUserNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "provider user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating provider user")
	}
	return nil
}

func identityFromToken(token *fbauth.Token) *Identity {
	identity := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	return identity
}
