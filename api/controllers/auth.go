package controllers

import (
	"net/http"

	"github.com/kuhabites/kuha-web/api/middleware"
	"github.com/kuhabites/kuha-web/api/responses"
	"github.com/kuhabites/kuha-web/api/validators"
	"github.com/kuhabites/kuha-web/internal/auth"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

// StorefrontLogin signs a Kuha Bites admin in.
func StorefrontLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return login(svc, logg, func(r *http.Request, req auth.LoginRequest) (*auth.Session, error) {
		return svc.StorefrontLogin(r.Context(), req)
	})
}

// FoundationLogin signs an Imarika superuser in.
func FoundationLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return login(svc, logg, func(r *http.Request, req auth.LoginRequest) (*auth.Session, error) {
		return svc.FoundationLogin(r.Context(), req)
	})
}

func login(svc auth.Service, logg *logger.Logger, do func(*http.Request, auth.LoginRequest) (*auth.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := do(r, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithUsername(r.Context(), sess.Username)
			ctx = logg.WithActorRole(ctx, string(sess.Role))
			logg.Info(ctx, "auth.login.success")
		}
		responses.WriteSuccess(w, sess)
	}
}

// Logout clears the stored keys of the caller's site and revokes the session.
func Logout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		role := middleware.RoleFromContext(r.Context())
		if err := svc.Logout(r.Context(), role, middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
