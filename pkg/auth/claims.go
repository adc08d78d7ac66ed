package auth

import (
	"slices"

	"github.com/casamais/casamais-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID int64
	Role   enums.Role
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID      int64      `json:"user_id"`
	Role        enums.Role `json:"role"`
	Permissions []string   `json:"permissions"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the token grants tag.
func (c *AccessTokenClaims) HasPermission(tag enums.Permission) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Permissions, string(tag))
}
