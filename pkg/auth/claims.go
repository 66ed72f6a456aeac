package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/divelink/backoffice-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	AdminUID string
	Email    string
	Role     enums.AdminRole
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to back-office clients.
type AccessTokenClaims struct {
	AdminUID string          `json:"admin_uid"`
	Email    string          `json:"email"`
	Role     enums.AdminRole `json:"role"`
	jwt.RegisteredClaims
}
