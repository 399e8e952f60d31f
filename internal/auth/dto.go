package auth

import (
	"time"

	pkgAuth "github.com/kuhabites/kuha-web/pkg/auth"
)

// LoginRequest captures the admin credentials posted by either login form.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is returned after a successful admin login. Token is the BFF JWT
// sent back as a bearer token on admin routes.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Username  string       `json:"username"`
	Role      pkgAuth.Role `json:"role"`
}
