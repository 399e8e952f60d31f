// Package inbox handles storefront contact messages: the public send form
// and the admin inbox.
package inbox

import (
	"context"
	"strings"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
	"github.com/kuhabites/kuha-web/pkg/validate"
)

type Backend interface {
	SendMessage(ctx context.Context, msg kuha.MessageRequest) error
	ListMessages(ctx context.Context) ([]kuha.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
}

// ContactMessage is the floating message form. Tell is the sender's phone
// or email.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=120"`
	Tell    string `json:"tell" validate:"required,max=120"`
	Message string `json:"message" validate:"required,max=4000"`
}

type Service interface {
	Send(ctx context.Context, msg ContactMessage) error
	List(ctx context.Context) ([]kuha.Message, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	backend Backend
}

func NewService(backend Backend) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront backend is required")
	}
	return &service{backend: backend}, nil
}

func (s *service) Send(ctx context.Context, msg ContactMessage) error {
	msg = ContactMessage{
		Name:    strings.TrimSpace(msg.Name),
		Tell:    strings.TrimSpace(msg.Tell),
		Message: strings.TrimSpace(msg.Message),
	}
	if err := validate.Struct(msg); err != nil {
		return err
	}
	return s.backend.SendMessage(ctx, kuha.MessageRequest{
		Name:    msg.Name,
		Tell:    msg.Tell,
		Message: msg.Message,
	})
}

func (s *service) List(ctx context.Context) ([]kuha.Message, error) {
	msgs, err := s.backend.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []kuha.Message{}
	}
	return msgs, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "message id must be positive")
	}
	return s.backend.DeleteMessage(ctx, id)
}
