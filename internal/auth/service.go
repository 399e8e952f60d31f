// Package auth signs admins of both sites in against their backends and
// issues BFF session tokens for the admin routes.
package auth

import (
	"context"
	"strings"
	"time"

	pkgAuth "github.com/kuhabites/kuha-web/pkg/auth"
	"github.com/kuhabites/kuha-web/pkg/auth/session"
	"github.com/kuhabites/kuha-web/pkg/config"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/imarika"
	"github.com/kuhabites/kuha-web/pkg/kuha"
	"github.com/kuhabites/kuha-web/pkg/validate"
)

const (
	storefrontLoginFailedMessage = "Login failed. Please check your credentials."
	storefrontNotAdminMessage    = "Not an admin user."
	foundationInvalidMessage     = "Invalid username or password"
	foundationNotAdminMessage    = "Access denied: Not an admin user."
)

// Service defines the behavior needed by the auth controllers.
type Service interface {
	StorefrontLogin(ctx context.Context, req LoginRequest) (*Session, error)
	FoundationLogin(ctx context.Context, req LoginRequest) (*Session, error)
	Logout(ctx context.Context, role pkgAuth.Role, sessionID string) error
}

type StorefrontBackend interface {
	AdminLogin(ctx context.Context, username, password string) (*kuha.AdminLoginResponse, error)
}

type FoundationBackend interface {
	Token(ctx context.Context, username, password string) (*imarika.TokenPair, error)
	IsSuperuser(ctx context.Context, access string) (bool, error)
}

// PrefsWriter persists the per-site admin keys.
type PrefsWriter interface {
	SetStorefrontAdmin(ctx context.Context, username string) error
	ClearStorefrontAdmin(ctx context.Context) error
	SetFoundationTokens(ctx context.Context, access, refresh string) error
	ClearFoundationTokens(ctx context.Context) error
}

type sessionRegistry interface {
	Open(ctx context.Context, sessionID, username string) error
	Revoke(ctx context.Context, sessionID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Storefront StorefrontBackend
	Foundation FoundationBackend
	Prefs      PrefsWriter
	Sessions   sessionRegistry
	JWTConfig  config.JWTConfig
	Now        func() time.Time
}

type service struct {
	storefront StorefrontBackend
	foundation FoundationBackend
	prefs      PrefsWriter
	sessions   sessionRegistry
	jwtCfg     config.JWTConfig
	now        func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Storefront == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront backend is required")
	}
	if params.Foundation == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "foundation backend is required")
	}
	if params.Prefs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prefs writer is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session registry is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		storefront: params.Storefront,
		foundation: params.Foundation,
		prefs:      params.Prefs,
		sessions:   params.Sessions,
		jwtCfg:     params.JWTConfig,
		now:        now,
	}, nil
}

func (s *service) StorefrontLogin(ctx context.Context, req LoginRequest) (*Session, error) {
	req = normalize(req)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	res, err := s.storefront.AdminLogin(ctx, req.Username, req.Password)
	if err != nil {
		return nil, rejectLogin(err, storefrontLoginFailedMessage)
	}
	if !res.IsAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, storefrontNotAdminMessage)
	}

	username := res.Username
	if strings.TrimSpace(username) == "" {
		username = req.Username
	}
	if err := s.prefs.SetStorefrontAdmin(ctx, username); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist admin session")
	}
	return s.issue(ctx, username, pkgAuth.RoleStorefrontAdmin)
}

// FoundationLogin exchanges credentials for a token pair and requires the
// account to be a superuser before the pair is stored.
func (s *service) FoundationLogin(ctx context.Context, req LoginRequest) (*Session, error) {
	req = normalize(req)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	pair, err := s.foundation.Token(ctx, req.Username, req.Password)
	if err != nil {
		return nil, rejectLogin(err, foundationInvalidMessage)
	}
	superuser, err := s.foundation.IsSuperuser(ctx, pair.Access)
	if err != nil {
		return nil, err
	}
	if !superuser {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, foundationNotAdminMessage)
	}

	if err := s.prefs.SetFoundationTokens(ctx, pair.Access, pair.Refresh); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist admin tokens")
	}
	return s.issue(ctx, req.Username, pkgAuth.RoleFoundationAdmin)
}

// Logout removes the stored keys of the role's site and revokes the session.
func (s *service) Logout(ctx context.Context, role pkgAuth.Role, sessionID string) error {
	var err error
	switch role {
	case pkgAuth.RoleStorefrontAdmin:
		err = s.prefs.ClearStorefrontAdmin(ctx)
	case pkgAuth.RoleFoundationAdmin:
		err = s.prefs.ClearFoundationTokens(ctx)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear admin session")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) issue(ctx context.Context, username string, role pkgAuth.Role) (*Session, error) {
	sessionID := session.NewID()
	token, expiresAt, err := pkgAuth.MintSessionToken(s.jwtCfg, s.now(), pkgAuth.SessionPayload{
		Username:  username,
		Role:      role,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}
	if err := s.sessions.Open(ctx, sessionID, username); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open session")
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Username: username, Role: role}, nil
}

// rejectLogin turns any upstream refusal into an unauthorized error carrying
// the site's login message. Transport failures keep their dependency code.
func rejectLogin(err error, message string) error {
	if pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, message)
}

func normalize(req LoginRequest) LoginRequest {
	return LoginRequest{Username: strings.TrimSpace(req.Username), Password: req.Password}
}
