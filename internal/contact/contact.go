// Package contact builds the storefront's WhatsApp ordering link.
package contact

import (
	"net/url"
	"strings"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
)

const whatsAppBase = "https://wa.me/"

type Service struct {
	phone          string
	defaultMessage string
}

func NewService(phone, defaultMessage string) (*Service, error) {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp phone is required")
	}
	return &Service{phone: phone, defaultMessage: defaultMessage}, nil
}

// WhatsAppLink returns a wa.me link that opens a chat prefilled with message,
// or with the default greeting when message is blank.
func (s *Service) WhatsAppLink(message string) string {
	if strings.TrimSpace(message) == "" {
		message = s.defaultMessage
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return whatsAppBase + s.phone + "?text=" + text
}
