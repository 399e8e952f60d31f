package controllers

import (
	"context"
	"net/http"

	"github.com/kuhabites/kuha-web/api/responses"
	"github.com/kuhabites/kuha-web/api/validators"
	"github.com/kuhabites/kuha-web/internal/prefs"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

// PrefsService is the browser-facing slice of the prefs service.
type PrefsService interface {
	Flags() prefs.Flags
	SetAudioEnabled(ctx context.Context, enabled bool) error
	DismissInstallPrompt(ctx context.Context) error
}

type audioRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func PrefsGet(svc PrefsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prefs unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Flags().Public())
	}
}

// PrefsSetAudio stores the welcome-page audio toggle.
func PrefsSetAudio(svc PrefsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prefs unavailable"))
			return
		}

		var req audioRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SetAudioEnabled(r.Context(), *req.Enabled); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store audio preference"))
			return
		}
		responses.WriteSuccess(w, svc.Flags().Public())
	}
}

func PrefsDismissInstallPrompt(svc PrefsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prefs unavailable"))
			return
		}
		if err := svc.DismissInstallPrompt(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store install prompt"))
			return
		}
		responses.WriteSuccess(w, svc.Flags().Public())
	}
}
