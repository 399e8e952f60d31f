package storefront

import (
	"net/http"

	"github.com/kuhabites/kuha-web/api/responses"
	"github.com/kuhabites/kuha-web/api/validators"
	"github.com/kuhabites/kuha-web/internal/inbox"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

const maxWhatsAppMessage = 1000

type WhatsApp interface {
	WhatsAppLink(message string) string
}

type whatsAppResponse struct {
	URL string `json:"url"`
}

// SendMessage posts the floating contact form to the storefront inbox.
func SendMessage(svc inbox.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inbox service unavailable"))
			return
		}

		var msg inbox.ContactMessage
		if err := validators.DecodeJSON(r, &msg); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Send(r.Context(), msg); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "sent"})
	}
}

func WhatsAppLink(svc WhatsApp, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}
		message := validators.ParseQueryString(r, "message", maxWhatsAppMessage)
		responses.WriteSuccess(w, whatsAppResponse{URL: svc.WhatsAppLink(message)})
	}
}
