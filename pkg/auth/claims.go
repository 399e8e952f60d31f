package auth

import "github.com/golang-jwt/jwt/v5"

// Role names the admin area a session may enter.
type Role string

const (
	RoleStorefrontAdmin Role = "storefront_admin"
	RoleFoundationAdmin Role = "foundation_admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStorefrontAdmin, RoleFoundationAdmin:
		return true
	}
	return false
}

// SessionPayload captures the data available when minting a session JWT.
type SessionPayload struct {
	Username  string
	Role      Role
	SessionID string
}

// SessionClaims is the typed JWT handed to the admin UI. The JWT ID is the
// session identifier checked against the session registry.
type SessionClaims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}
