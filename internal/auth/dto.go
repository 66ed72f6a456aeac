package auth

import (
	"time"

	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
)

// LoginRequest carries the local credential pair.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a refresh token tied to an expiring access token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is an access/refresh token issued to a dashboard session.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AdminProfile is the public view of an admin account.
type AdminProfile struct {
	UID         string          `json:"uid"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Role        enums.AdminRole `json:"role"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
}

// LoginResponse bundles the token pair with the admin profile.
type LoginResponse struct {
	TokenPair
	Admin AdminProfile `json:"admin"`
}

// ProfileFromModel maps the persistence model onto the public profile.
func ProfileFromModel(admin *models.Admin) AdminProfile {
	return AdminProfile{
		UID:         admin.UID,
		Email:       admin.Email,
		Name:        admin.Name,
		Role:        admin.Role,
		LastLoginAt: admin.LastLoginAt,
	}
}
